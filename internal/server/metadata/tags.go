package metadata

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// pageTags holds the head tags used as fallbacks when readability finds
// nothing better.
type pageTags struct {
	title         string
	description   string
	ogTitle       string
	ogDescription string
	ogImage       string
	ogSiteName    string
	twitterImage  string
	firstImg      string
}

// scanTags walks the token stream once and records the first value of
// every tag of interest.
func scanTags(body []byte) pageTags {
	var t pageTags
	z := html.NewTokenizer(bytes.NewReader(body))
	inTitle := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			return t
		case html.TextToken:
			if inTitle && t.title == "" {
				t.title = strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			attrs := map[string]string{}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				attrs[strings.ToLower(string(k))] = string(v)
			}

			switch string(name) {
			case "title":
				inTitle = true
			case "meta":
				key := strings.ToLower(firstNonEmpty(attrs["property"], attrs["name"]))
				t.setMeta(key, strings.TrimSpace(attrs["content"]))
			case "img":
				if t.firstImg == "" {
					t.firstImg = strings.TrimSpace(attrs["src"])
				}
			}
		}
	}
}

func (t *pageTags) setMeta(key, val string) {
	if val == "" {
		return
	}
	set := func(dst *string) {
		if *dst == "" {
			*dst = val
		}
	}
	switch key {
	case "description":
		set(&t.description)
	case "og:title":
		set(&t.ogTitle)
	case "og:description":
		set(&t.ogDescription)
	case "og:image", "og:image:url", "og:image:secure_url":
		set(&t.ogImage)
	case "og:site_name":
		set(&t.ogSiteName)
	case "twitter:image", "twitter:image:src":
		set(&t.twitterImage)
	}
}
