// Package metadata builds link previews for shared URLs. YouTube and X links
// are handled through their public endpoints; every other page is parsed
// with go-readability plus the page's Open Graph tags.
package metadata
