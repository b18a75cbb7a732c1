package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/youtube"
	"golang.org/x/net/html"
)

var youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func isYouTube(u *url.URL) bool {
	switch strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}

func isTwitter(u *url.URL) bool {
	switch strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") {
	case "twitter.com", "mobile.twitter.com", "x.com":
		return true
	}
	return false
}

// youTubeID extracts the video id from watch, short, embed and youtu.be
// links. It returns "" when the URL names no video.
func youTubeID(u *url.URL) string {
	var id string
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case strings.EqualFold(u.Hostname(), "youtu.be"):
		id = segs[0]
	case len(segs) >= 2 && (segs[0] == "shorts" || segs[0] == "embed" || segs[0] == "live" || segs[0] == "v"):
		id = segs[1]
	default:
		id = u.Query().Get("v")
	}

	if !youTubeIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// CanonicalURL rewrites any YouTube video link to its watch URL, the form
// automation imports are stored under. Other links are returned trimmed but
// otherwise unchanged.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !isYouTube(u) {
		return raw
	}
	if id := youTubeID(u); id != "" {
		return youtube.WatchURL(id)
	}
	return raw
}

// YouTubeThumbnail returns the high quality thumbnail of a video.
func YouTubeThumbnail(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

func (e *Extractor) youTube(ctx context.Context, u *url.URL, id string) (*Metadata, error) {
	body, _, err := e.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	tags := scanTags(body)

	title := firstNonEmpty(tags.ogTitle, strings.TrimSuffix(tags.title, " - YouTube"))
	desc := firstNonEmpty(tags.ogDescription, tags.description)
	return &Metadata{
		Title:       title,
		Description: desc,
		ImageURL:    YouTubeThumbnail(id),
		SiteName:    "YouTube",
		ReadingTime: reading.ReadingTime(len(strings.Fields(desc))),
	}, nil
}

type oEmbed struct {
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	HTML         string `json:"html"`
	ProviderName string `json:"provider_name"`
	Title        string `json:"title"`
}

func (e *Extractor) twitter(ctx context.Context, u *url.URL) (*Metadata, error) {
	endpoint, err := url.Parse(e.oembedEndpoint)
	if err != nil {
		return nil, fmt.Errorf("oembed endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("url", u.String())
	q.Set("omit_script", "true")
	endpoint.RawQuery = q.Encode()

	body, _, err := e.fetch(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var oe oEmbed
	if err := json.Unmarshal(body, &oe); err != nil {
		return nil, fmt.Errorf("decode oembed: %w", err)
	}

	text := htmlText(oe.HTML)
	title := oe.Title
	if title == "" && oe.AuthorName != "" {
		title = "Post by " + oe.AuthorName
	}
	return &Metadata{
		Title:       firstNonEmpty(title, u.String()),
		Description: text,
		SiteName:    firstNonEmpty(oe.ProviderName, "X"),
		ReadingTime: reading.ReadingTime(len(strings.Fields(text))),
	}, nil
}

// htmlText flattens an HTML fragment to its visible text. The trailing
// attribution line of embedded posts is kept.
func htmlText(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}
