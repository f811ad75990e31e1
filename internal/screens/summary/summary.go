// Package summary shows the end-of-path learning summary.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/progress"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

// summaryMsg carries the generated summary.
type summaryMsg struct {
	Summary *session.LearningSummary
	Err     error
}

// Screen shows the learning summary.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	loading bool
	summary *session.LearningSummary
	errMsg  string
	notice  string

	// exportDir receives exported notes; "" is the working directory.
	exportDir string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BusyReporter = (*Screen)(nil)

// New creates the summary screen. The summary is generated on Init.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	return &Screen{orch: orch, screens: screens}
}

// WithExportDir sets the directory exported notes are written to.
func (s *Screen) WithExportDir(dir string) *Screen {
	s.exportDir = dir
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.loading = true
	orch := s.orch
	return func() tea.Msg {
		sum, err := orch.Summary(context.Background())
		return summaryMsg{Summary: sum, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Learning Summary"
}

func (s *Screen) Busy() bool {
	return s.loading
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "e", Description: "Export notes"},
		{Key: "n", Description: "New learning path"},
		{Key: "h", Description: "Quiz history"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = s.orch.Message()
			if s.errMsg == "" {
				s.errMsg = msg.Err.Error()
			}
			return s, nil
		}
		s.summary = msg.Summary
		return s, nil

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "e":
			if s.summary == nil {
				return s, nil
			}
			path, err := s.orch.ExportNotes(context.Background(), s.exportDir, progress.FormatText)
			if err != nil {
				s.notice = s.orch.Message()
				return s, nil
			}
			s.notice = "Notes saved to " + path
			return s, nil
		case "n":
			s.orch.StartOver(context.Background(), false)
			return s, nav.Reset(s.screens.Path())
		case "h":
			return s, nav.Push(s.screens.History())
		case "esc", "enter":
			return s, nav.Reset(s.screens.Dashboard())
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		return components.Center(components.Panel("Learning Summary", theme.Hint.Render("Reviewing your progress…"), cw), width, height)
	}
	if s.errMsg != "" {
		return components.Center(components.Panel("Learning Summary", theme.ErrorText.Render(s.errMsg), cw), width, height)
	}

	sum := s.summary
	st := sum.Statistics
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Congratulations, %s!", sum.Profile.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s", sum.Profile.LearningGoal, sum.Profile.SkillLevel)))
	b.WriteString("\n\n")

	b.WriteString(components.NewProgressBar("Progress", st.OverallProgress, cw-4).View())
	b.WriteString("\n\n")
	b.WriteString(statRow("Videos completed", fmt.Sprintf("%d/%d", st.CompletedVideos, st.TotalVideos)))
	b.WriteString(statRow("Quizzes taken", fmt.Sprint(st.CompletedQuizzes)))
	b.WriteString(statRow("Average score", fmt.Sprintf("%d%%", st.AverageQuizScore)))
	b.WriteString(statRow("Time spent", st.TimeSpent.Formatted))
	b.WriteString("\n")

	if len(sum.Badges) > 0 {
		names := make([]string, len(sum.Badges))
		for i, badge := range sum.Badges {
			names[i] = "★ " + badge.Name
		}
		b.WriteString(theme.Correct.Render(strings.Join(names, "   ")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(sum.Text))
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(components.Panel("Learning Summary", b.String(), cw))
}

func statRow(label, value string) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-18s", label)) + theme.Body.Render(value) + "\n"
}
