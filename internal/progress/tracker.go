// Package progress owns the learning session record and the statistics
// derived from it.
package progress

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/logging"
)

// Tracker reads and mutates the persisted LearningSession. Every call
// re-reads the session from the store; nothing is cached between calls.
type Tracker struct {
	kv    *kvstore.Store
	log   *logging.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides session and note id generation.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// NewTracker creates a Tracker persisting through kv.
func NewTracker(kv *kvstore.Store, opts ...Option) *Tracker {
	t := &Tracker{
		kv:    kv,
		log:   logging.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	t.log = t.log.Named("progress")
	return t
}

// Initialize replaces any existing session with a fresh one built from
// videos. Repeated ids keep their first occurrence. The returned session
// is valid even when persisting it failed.
func (t *Tracker) Initialize(ctx context.Context, videos []Video) *LearningSession {
	now := t.now()
	s := &LearningSession{
		SessionID:   t.newID(),
		StartTime:   now,
		Videos:      make([]VideoProgress, 0, len(videos)),
		LastUpdated: now,
	}
	seen := make(map[string]bool, len(videos))
	for _, v := range videos {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		s.Videos = append(s.Videos, VideoProgress{
			VideoID: v.ID,
			Title:   v.Title,
			Notes:   []Note{},
		})
	}
	s.recompute()

	if !t.kv.Set(ctx, kvstore.KeyLearningProgress, s) {
		t.log.Warn("session not persisted", "session", s.SessionID)
	}
	return s
}

// Current returns the persisted session, or nil when there is none.
func (t *Tracker) Current(ctx context.Context) *LearningSession {
	var s LearningSession
	if !t.kv.Get(ctx, kvstore.KeyLearningProgress, &s) {
		return nil
	}
	if s.Videos == nil {
		s.Videos = []VideoProgress{}
	}
	return &s
}

// MarkVideoCompleted records completion and dwell time for id. It returns
// false when there is no session or id is not part of it.
func (t *Tracker) MarkVideoCompleted(ctx context.Context, id string, viewSeconds int) bool {
	return t.mutate(ctx, id, func(v *VideoProgress) {
		v.Completed = true
		v.ViewSeconds = max(viewSeconds, 0)
	})
}

// UpdateQuizScore records a quiz score for id. Scores are clamped to 0-100.
func (t *Tracker) UpdateQuizScore(ctx context.Context, id string, score int) bool {
	return t.mutate(ctx, id, func(v *VideoProgress) {
		v.QuizCompleted = true
		v.Score = min(max(score, 0), 100)
	})
}

// AddNote appends a note to id. Blank notes are rejected.
func (t *Tracker) AddNote(ctx context.Context, id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return t.mutate(ctx, id, func(v *VideoProgress) {
		v.Notes = append(v.Notes, Note{ID: t.newID(), Text: text, Timestamp: t.now()})
	})
}

func (t *Tracker) mutate(ctx context.Context, id string, fn func(*VideoProgress)) bool {
	s := t.Current(ctx)
	if s == nil {
		return false
	}
	v := s.Video(id)
	if v == nil {
		return false
	}
	fn(v)
	s.recompute()
	s.LastUpdated = t.now()
	return t.kv.Set(ctx, kvstore.KeyLearningProgress, s)
}

// NextVideo returns the first incomplete video in sequence order, or nil
// when every video is complete or no session exists.
func (t *Tracker) NextVideo(ctx context.Context) *VideoProgress {
	s := t.Current(ctx)
	if s == nil {
		return nil
	}
	for i := range s.Videos {
		if !s.Videos[i].Completed {
			v := s.Videos[i]
			return &v
		}
	}
	return nil
}

// IsComplete reports whether every video is complete. An absent or empty
// session is never complete.
func (t *Tracker) IsComplete(ctx context.Context) bool {
	s := t.Current(ctx)
	if s == nil || len(s.Videos) == 0 {
		return false
	}
	return s.CompletedCount() == len(s.Videos)
}

// Statistics derives summary figures. ok is false when no session exists.
func (t *Tracker) Statistics(ctx context.Context) (stats Statistics, ok bool) {
	s := t.Current(ctx)
	if s == nil {
		return Statistics{TimeSpent: newTimeSpent(0)}, false
	}

	var scoreSum int
	for _, v := range s.Videos {
		if v.Completed {
			stats.CompletedVideos++
			stats.TotalViewSeconds += v.ViewSeconds
		}
		if v.QuizCompleted {
			stats.CompletedQuizzes++
			scoreSum += v.Score
		}
	}
	stats.TotalVideos = len(s.Videos)
	if stats.CompletedQuizzes > 0 {
		stats.AverageQuizScore = int(math.Round(float64(scoreSum) / float64(stats.CompletedQuizzes)))
	}
	stats.OverallProgress = percent(stats.CompletedVideos, stats.TotalVideos)
	stats.TimeSpent = newTimeSpent(t.now().Sub(s.StartTime))
	return stats, true
}

// Clear deletes the persisted session.
func (t *Tracker) Clear(ctx context.Context) bool {
	return t.kv.Remove(ctx, kvstore.KeyLearningProgress)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
