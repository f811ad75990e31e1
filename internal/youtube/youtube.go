// Package youtube searches for candidate learning videos over the YouTube
// Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/abhisek/learnflow/internal/logging"
)

// ErrNoAPIKey is returned by NewClient when no API key is configured.
var ErrNoAPIKey = errors.New("youtube: API key not configured")

// MaxSearchResults is the largest page the search endpoint accepts.
const MaxSearchResults = 50

// Searcher finds videos and fetches their details.
type Searcher interface {
	// Search returns up to max videos matching query. No results is an
	// empty slice, not an error.
	Search(ctx context.Context, query string, max int) ([]VideoSummary, error)

	// Details returns duration and statistics for the given video ids.
	Details(ctx context.Context, ids []string) ([]VideoDetail, error)
}

// VideoSummary is a search hit.
type VideoSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail,omitempty"`
}

// URL returns the watch page for the video.
func (v VideoSummary) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// EmbedURL returns the embeddable player URL for the video.
func (v VideoSummary) EmbedURL() string {
	return "https://www.youtube.com/embed/" + v.ID
}

// VideoDetail adds duration and statistics to a summary.
type VideoDetail struct {
	VideoSummary
	DurationSeconds int      `json:"duration"`
	ViewCount       uint64   `json:"viewCount"`
	LikeCount       uint64   `json:"likeCount"`
	CommentCount    uint64   `json:"commentCount"`
	Tags            []string `json:"tags,omitempty"`
}

// Duration returns the formatted duration, e.g. "12:05".
func (d VideoDetail) Duration() string {
	return FormatDuration(d.DurationSeconds)
}

// Options configures a Client.
type Options struct {
	APIKey string

	// Endpoint overrides the API base URL. Used by tests.
	Endpoint string

	// VideoDuration and VideoDefinition filter search results.
	VideoDuration   string
	VideoDefinition string
}

// Client is a Searcher backed by the YouTube Data API.
type Client struct {
	svc  *yt.Service
	opts Options
	log  *logging.Logger
}

// NewClient creates a YouTube API client.
func NewClient(ctx context.Context, opts Options, log *logging.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if opts.VideoDuration == "" {
		opts.VideoDuration = "medium"
	}
	if opts.VideoDefinition == "" {
		opts.VideoDefinition = "high"
	}
	if log == nil {
		log = logging.Nop()
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc, opts: opts, log: log.Named("youtube")}, nil
}

// Search implements Searcher.
func (c *Client) Search(ctx context.Context, query string, max int) ([]VideoSummary, error) {
	if max <= 0 {
		max = 20
	}
	max = min(max, MaxSearchResults)
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(max)).
		VideoDuration(c.opts.VideoDuration).
		VideoDefinition(c.opts.VideoDefinition).
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}

	out := make([]VideoSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		out = append(out, VideoSummary{
			ID:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			Thumbnail:    bestThumbnail(item.Snippet.Thumbnails),
		})
	}
	c.log.Debug("search complete", "query", query, "results", len(out))
	return out, nil
}

// Details implements Searcher.
func (c *Client) Details(ctx context.Context, ids []string) ([]VideoDetail, error) {
	if len(ids) == 0 {
		return []VideoDetail{}, nil
	}
	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube video details: %w", err)
	}

	out := make([]VideoDetail, 0, len(resp.Items))
	for _, item := range resp.Items {
		d := VideoDetail{VideoSummary: VideoSummary{ID: item.Id}}
		if s := item.Snippet; s != nil {
			d.Title = s.Title
			d.Description = s.Description
			d.ChannelTitle = s.ChannelTitle
			d.PublishedAt = s.PublishedAt
			d.Thumbnail = bestThumbnail(s.Thumbnails)
			d.Tags = s.Tags
		}
		if cd := item.ContentDetails; cd != nil {
			d.DurationSeconds = ParseDuration(cd.Duration)
		}
		if st := item.Statistics; st != nil {
			d.ViewCount = st.ViewCount
			d.LikeCount = st.LikeCount
			d.CommentCount = st.CommentCount
		}
		out = append(out, d)
	}
	return out, nil
}

func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
