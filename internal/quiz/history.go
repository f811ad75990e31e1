package quiz

import (
	"context"
	"time"

	"github.com/abhisek/learnflow/internal/kvstore"
)

// HistoryEntry is one submitted quiz in the append-only history.
type HistoryEntry struct {
	VideoID     string    `json:"videoId"`
	VideoTitle  string    `json:"videoTitle"`
	Results     Result    `json:"results"`
	CompletedAt time.Time `json:"completedAt"`
}

// History persists submitted quiz results.
type History struct {
	kv *kvstore.Store
}

// NewHistory returns a History over kv.
func NewHistory(kv *kvstore.Store) *History {
	return &History{kv: kv}
}

// Append adds an entry. The list is re-read before writing.
func (h *History) Append(ctx context.Context, e HistoryEntry) bool {
	entries := h.List(ctx)
	entries = append(entries, e)
	return h.kv.Set(ctx, kvstore.KeyQuizHistory, entries)
}

// List returns all entries, oldest first.
func (h *History) List(ctx context.Context) []HistoryEntry {
	var entries []HistoryEntry
	if !h.kv.Get(ctx, kvstore.KeyQuizHistory, &entries) {
		return nil
	}
	return entries
}

// ForVideo returns the entries for one video, oldest first.
func (h *History) ForVideo(ctx context.Context, videoID string) []HistoryEntry {
	var out []HistoryEntry
	for _, e := range h.List(ctx) {
		if e.VideoID == videoID {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes the whole history.
func (h *History) Clear(ctx context.Context) bool {
	return h.kv.Remove(ctx, kvstore.KeyQuizHistory)
}
