// Package youtube lists recent channel uploads through the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrChannelNotFound is returned for channel ids the API does not know.
var ErrChannelNotFound = errors.New("channel not found")

// Video is one upload.
type Video struct {
	ID           string
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	PublishedAt  time.Time
}

// Client wraps the generated YouTube Data API service.
type Client struct {
	svc *yt.Service
}

// New builds a Client authenticated with apiKey. Extra options are appended
// and win over the defaults.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// LatestVideos returns up to max newest uploads of channelID, newest first.
func (c *Client) LatestVideos(ctx context.Context, channelID string, max int) ([]Video, error) {
	if max <= 0 {
		return nil, nil
	}

	chs, err := c.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list channel %s: %w", channelID, err)
	}
	if len(chs.Items) == 0 || chs.Items[0].ContentDetails == nil || chs.Items[0].ContentDetails.RelatedPlaylists == nil {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}
	uploads := chs.Items[0].ContentDetails.RelatedPlaylists.Uploads

	items, err := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(uploads).
		MaxResults(int64(max)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list uploads %s: %w", uploads, err)
	}

	out := make([]Video, 0, len(items.Items))
	for _, it := range items.Items {
		sn := it.Snippet
		if sn == nil || sn.ResourceId == nil || sn.ResourceId.VideoId == "" {
			continue
		}
		v := Video{
			ID:           sn.ResourceId.VideoId,
			Title:        sn.Title,
			Description:  sn.Description,
			URL:          WatchURL(sn.ResourceId.VideoId),
			ThumbnailURL: thumbnail(sn.ResourceId.VideoId, sn.Thumbnails),
		}
		if t, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
			v.PublishedAt = t
		}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out, nil
}

// WatchURL is the canonical link of a video; it is also the dedupe key of
// imported articles.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func thumbnail(id string, th *yt.ThumbnailDetails) string {
	if th != nil {
		for _, t := range []*yt.Thumbnail{th.High, th.Medium, th.Default} {
			if t != nil && t.Url != "" {
				return t.Url
			}
		}
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}
