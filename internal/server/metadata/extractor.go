package metadata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"
)

// DefaultOEmbedEndpoint serves X/Twitter post previews.
const DefaultOEmbedEndpoint = "https://publish.twitter.com/oembed"

const (
	maxBodyBytes = 5 << 20
	userAgent    = "Mozilla/5.0 (compatible; ReadDailyBot/1.0)"
)

// ErrUnsupportedURL is returned for anything but absolute http(s) URLs.
var ErrUnsupportedURL = errors.New("unsupported url")

// Metadata is the preview of a link.
type Metadata struct {
	Title       string
	Description string
	ImageURL    string
	SiteName    string
	ReadingTime int
}

// Extractor fetches pages and derives Metadata from them. All outbound
// requests share one token bucket.
type Extractor struct {
	client         *http.Client
	limiter        *rate.Limiter
	timeout        time.Duration
	oembedEndpoint string
	logger         logging.Logger
}

type Option func(*Extractor)

// WithHTTPClient replaces the HTTP client. The replacement is not restricted
// to public addresses.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) { e.client = c }
}

// WithOEmbedEndpoint points X/Twitter lookups at another oEmbed server.
func WithOEmbedEndpoint(u string) Option {
	return func(e *Extractor) { e.oembedEndpoint = u }
}

// NewExtractor builds an Extractor whose requests time out after timeout and
// are limited to ratePerSecond. A non-positive rate disables limiting.
// The default client refuses to connect to non-public addresses.
func NewExtractor(timeout time.Duration, ratePerSecond float64, logger logging.Logger, opts ...Option) *Extractor {
	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = max(1, int(ratePerSecond))
	}

	e := &Extractor{
		client:         newGuardedClient(allowPublic),
		limiter:        rate.NewLimiter(limit, burst),
		timeout:        timeout,
		oembedEndpoint: DefaultOEmbedEndpoint,
		logger:         logger.With("module", "metadata"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the preview of rawURL.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var m *Metadata
	switch {
	case isYouTube(u):
		if id := youTubeID(u); id != "" {
			m, err = e.youTube(ctx, u, id)
			break
		}
		m, err = e.page(ctx, u)
	case isTwitter(u):
		m, err = e.twitter(ctx, u)
	default:
		m, err = e.page(ctx, u)
	}
	if err != nil {
		e.logger.Debug(ctx, "extraction failed", "url", u.String(), "error", err)
		return nil, err
	}

	m.ReadingTime = max(m.ReadingTime, 1)
	return m, nil
}

// page handles generic articles.
func (e *Extractor) page(ctx context.Context, u *url.URL) (*Metadata, error) {
	body, final, err := e.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), final)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", final, err)
	}
	tags := scanTags(body)

	m := &Metadata{
		Title:       firstNonEmpty(article.Title, tags.ogTitle, tags.title),
		Description: firstNonEmpty(article.Excerpt, tags.ogDescription, tags.description),
		SiteName:    firstNonEmpty(article.SiteName, tags.ogSiteName, siteFromHost(final)),
		ReadingTime: reading.ReadingTime(len(strings.Fields(article.TextContent))),
	}

	for _, candidate := range []string{article.Image, tags.ogImage, tags.twitterImage, tags.firstImg} {
		if abs := resolve(final, candidate); abs != "" {
			m.ImageURL = abs
			break
		}
	}
	return m, nil
}

// fetch GETs rawURL through the limiter and returns the body and the URL
// after redirects.
func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, resp.Request.URL, nil
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(r)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

func siteFromHost(u *url.URL) string {
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
