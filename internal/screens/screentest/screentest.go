// Package screentest provides helpers for testing screens against a real
// orchestrator backed by in-memory storage.
package screentest

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/youtube"
)

// Stub is a screen that only reports its title.
type Stub struct {
	Name string
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// Screens returns stubs titled after the part of the flow they stand for.
type Screens struct{}

func (Screens) Onboarding() screen.Screen { return &Stub{Name: "onboarding"} }
func (Screens) Path() screen.Screen       { return &Stub{Name: "path"} }
func (Screens) Dashboard() screen.Screen  { return &Stub{Name: "dashboard"} }
func (Screens) Video() screen.Screen      { return &Stub{Name: "video"} }
func (Screens) Quiz() screen.Screen       { return &Stub{Name: "quiz"} }
func (Screens) Summary() screen.Screen    { return &Stub{Name: "summary"} }
func (Screens) History() screen.Screen    { return &Stub{Name: "history"} }

// Clock is a manually advanced clock.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Searcher returns a fixed result list.
type Searcher struct {
	Results []youtube.VideoSummary
}

func (s *Searcher) Search(_ context.Context, _ string, max int) ([]youtube.VideoSummary, error) {
	if len(s.Results) > max {
		return s.Results[:max], nil
	}
	return s.Results, nil
}

func (s *Searcher) Details(_ context.Context, ids []string) ([]youtube.VideoDetail, error) {
	out := make([]youtube.VideoDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, youtube.VideoDetail{VideoSummary: youtube.VideoSummary{ID: id}, DurationSeconds: 420})
	}
	return out, nil
}

// Videos is the default search result set.
func Videos() []youtube.VideoSummary {
	return []youtube.VideoSummary{
		{ID: "v1", Title: "Python variables explained", Description: "Variables and types", ChannelTitle: "Code Club"},
		{ID: "v2", Title: "Python functions for beginners", Description: "Defining functions", ChannelTitle: "Code Club"},
	}
}

// NewOrchestrator builds an orchestrator over in-memory storage with a
// fake searcher and an optional provider.
func NewOrchestrator(t *testing.T, provider llm.Provider) (*session.Orchestrator, *Clock) {
	t.Helper()
	clk := &Clock{t: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	cfg := session.DefaultConfig()
	cfg.QuestionCount = 3
	cfg.SelectedVideos = 2
	o := session.New(session.Deps{
		KV:       kvstore.NewMemory(),
		Searcher: &Searcher{Results: Videos()},
		Provider: provider,
		Config:   cfg,
		Now:      clk.Now,
	})
	t.Cleanup(o.Close)
	return o, clk
}

// WithPath onboards a learner and builds a learning path.
func WithPath(t *testing.T, o *session.Orchestrator) {
	t.Helper()
	ctx := context.Background()
	if _, err := o.Onboard(ctx, "Ada", "beginner", "Python Programming"); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if _, err := o.BuildLearningPath(ctx); err != nil {
		t.Fatalf("build learning path: %v", err)
	}
}

// Key builds a key press for a key name such as "enter", "ctrl+s" or "c".
func Key(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	r := []rune(name)
	return tea.KeyPressMsg{Code: r[0], Text: name}
}

// Msg runs cmd and returns its message, or nil for a nil command.
func Msg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
