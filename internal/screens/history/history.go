// Package history lists past quiz attempts.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/quiz"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []quiz.HistoryEntry
}

// Screen displays past quiz attempts, newest first.
type Screen struct {
	history  *quiz.History
	entries  []quiz.HistoryEntry
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the history screen.
func New(history *quiz.History) *Screen {
	return &Screen{
		history:  history,
		expanded: make(map[int]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	h := s.history
	return func() tea.Msg {
		return historyLoadedMsg{Entries: newestFirst(h.List(context.Background()))}
	}
}

func newestFirst(entries []quiz.HistoryEntry) []quiz.HistoryEntry {
	out := make([]quiz.HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

func (s *Screen) Title() string {
	return "Quiz History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.entries = msg.Entries
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nav.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if !s.loaded {
		return components.Center(theme.Hint.Render("Loading history…"), width, height)
	}
	if len(s.entries) == 0 {
		return components.Center(components.Panel("Quiz History", theme.Body.Render("No quizzes taken yet."), cw), width, height)
	}

	var b strings.Builder
	for i, e := range s.entries {
		res := e.Results
		cursor := "  "
		style := theme.Unselected
		if i == s.selected {
			cursor = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-40s %3d%%  %s",
			cursor,
			e.CompletedAt.Local().Format("Jan 02 15:04"),
			layout.Truncate(e.VideoTitle, 40),
			res.Score,
			res.Performance.Badge(),
		)
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			for j, qr := range res.QuestionResults {
				mark := theme.Correct.Render("✓")
				if !qr.IsCorrect {
					mark = theme.Incorrect.Render("✗")
				}
				b.WriteString(fmt.Sprintf("      %s %d. %s\n", mark, j+1, layout.Truncate(qr.Question, cw-16)))
			}
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(components.Panel("Quiz History", strings.TrimRight(b.String(), "\n"), cw))
}
