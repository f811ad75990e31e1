package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT1H2M10S", 3730},
		{"PT15M", 900},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"", 0},
		{"P1D", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:45", FormatDuration(45))
	assert.Equal(t, "12:05", FormatDuration(725))
	assert.Equal(t, "1:02:10", FormatDuration(3730))
	assert.Equal(t, "0:00", FormatDuration(-3))
}

func TestNewClient_NoKey(t *testing.T) {
	_, err := NewClient(context.Background(), Options{}, nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Options{APIKey: "test-key", Endpoint: srv.URL + "/"}, nil)
	require.NoError(t, err)
	return c
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/search"), r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "go tutorial", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "medium", q.Get("videoDuration"))
		assert.Equal(t, "high", q.Get("videoDefinition"))
		assert.Equal(t, "relevance", q.Get("order"))
		assert.Equal(t, "3", q.Get("maxResults"))
		assert.Equal(t, "test-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []any{
				map[string]any{
					"id": map[string]any{"kind": "youtube#video", "videoId": "abc"},
					"snippet": map[string]any{
						"title":        "Go in 10 minutes",
						"channelTitle": "Gophers",
						"thumbnails": map[string]any{
							"default": map[string]any{"url": "http://img/default.jpg"},
							"high":    map[string]any{"url": "http://img/high.jpg"},
						},
					},
				},
				map[string]any{"id": map[string]any{"kind": "youtube#channel"}},
			},
		})
	})

	got, err := c.Search(context.Background(), "go tutorial", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ID)
	assert.Equal(t, "Go in 10 minutes", got[0].Title)
	assert.Equal(t, "http://img/high.jpg", got[0].Thumbnail)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", got[0].URL())
}

func TestClient_SearchCapsPageSize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})

	_, err := c.Search(context.Background(), "go", 200)
	require.NoError(t, err)
}

func TestClient_SearchEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})

	got, err := c.Search(context.Background(), "nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_SearchTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
	})

	_, err := c.Search(context.Background(), "go", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "youtube search")
}

func TestClient_Details(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/videos"), r.URL.Path)
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"id": "a", "snippet": {"title": "A"}, "contentDetails": {"duration": "PT12M5S"}, "statistics": {"viewCount": "1500", "likeCount": "40", "commentCount": "7"}},
			{"id": "b", "snippet": {"title": "B"}, "contentDetails": {"duration": "PT1H"}}
		]}`))
	})

	got, err := c.Details(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 725, got[0].DurationSeconds)
	assert.Equal(t, "12:05", got[0].Duration())
	assert.Equal(t, uint64(1500), got[0].ViewCount)
	assert.Equal(t, uint64(40), got[0].LikeCount)
	assert.Equal(t, uint64(7), got[0].CommentCount)
	assert.Zero(t, got[1].CommentCount)
	assert.Equal(t, 3600, got[1].DurationSeconds)
}

func TestClient_DetailsNoIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	got, err := c.Details(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
