// Package dashboard shows the learning path, overall progress and the
// curated videos.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
	"github.com/abhisek/learnflow/internal/youtube"
)

// Screen is the dashboard.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	profile  *profile.UserProfile
	current  *session.CurrentSession
	learning *progress.LearningSession
	stats    progress.Statistics
	theme    string

	selected   int
	confirmAll bool
	message    string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the dashboard.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	s := &Screen{orch: orch, screens: screens}
	s.refresh()
	if next := orch.Tracker().NextVideo(context.Background()); next != nil && s.learning != nil {
		for i, v := range s.learning.Videos {
			if v.VideoID == next.VideoID {
				s.selected = i
			}
		}
	}
	return s
}

func (s *Screen) refresh() {
	ctx := context.Background()
	s.profile = s.orch.Profile(ctx)
	s.current = s.orch.CurrentSession(ctx)
	s.learning = s.orch.Tracker().Current(ctx)
	s.stats, _ = s.orch.Tracker().Statistics(ctx)
	s.theme = s.orch.Theme(ctx)
	if s.theme == "" {
		s.theme = theme.Dark
	}
	if s.learning != nil && s.selected >= len(s.learning.Videos) {
		s.selected = 0
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Dashboard"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmAll {
		return []layout.KeyHint{
			{Key: "y", Description: "Erase everything"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Watch"},
		{Key: "c", Description: "Continue"},
		{Key: "s", Description: "Summary"},
		{Key: "h", Description: "History"},
		{Key: "n", Description: "New path"},
		{Key: "x", Description: "Start over"},
		{Key: "t", Description: "Theme"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResumedMsg:
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	if s.confirmAll {
		s.confirmAll = false
		if key == "y" || key == "Y" {
			s.orch.StartOver(ctx, true)
			return s, nav.Reset(s.screens.Onboarding())
		}
		return s, nil
	}

	s.message = ""
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.learning != nil && s.selected < len(s.learning.Videos)-1 {
			s.selected++
		}
	case "enter":
		if s.learning == nil || len(s.learning.Videos) == 0 {
			return s, nil
		}
		if err := s.orch.OpenVideo(ctx, s.learning.Videos[s.selected].VideoID); err != nil {
			s.message = s.orch.Message()
			return s, nil
		}
		return s, nav.Push(s.screens.Video())
	case "c":
		next, err := s.orch.ContinueLearning(ctx)
		if err != nil {
			s.message = s.orch.Message()
			return s, nil
		}
		if next == nil {
			return s, nav.Push(s.screens.Summary())
		}
		return s, nav.Push(s.screens.Video())
	case "s":
		if !s.orch.Tracker().IsComplete(ctx) {
			s.message = "Finish every video to unlock your learning summary."
			return s, nil
		}
		return s, nav.Push(s.screens.Summary())
	case "h":
		return s, nav.Push(s.screens.History())
	case "n":
		s.orch.StartOver(ctx, false)
		return s, nav.Reset(s.screens.Path())
	case "x":
		s.confirmAll = true
	case "t":
		next := theme.Next(s.theme)
		if s.orch.SetTheme(ctx, next) {
			s.theme = next
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.learning == nil || s.current == nil {
		body := theme.Body.Render("No learning path yet.") + "\n\n" + theme.Hint.Render("Press n to build one.")
		return components.Center(components.Panel("Dashboard", body, cw), width, height)
	}

	var b strings.Builder
	b.WriteString(s.renderOverview(cw))
	b.WriteString("\n")
	b.WriteString(s.renderVideos(cw))

	if len(s.current.Plan.FocusAreas) > 0 || s.current.Plan.ExpectedOutcome != "" {
		b.WriteString("\n")
		b.WriteString(s.renderPlan(cw))
	}

	switch {
	case s.confirmAll:
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Erase your profile, progress and quiz history? (y/n)"))
	case s.message != "":
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.message))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) renderOverview(width int) string {
	var b strings.Builder
	if s.profile != nil {
		b.WriteString(theme.Title.Render(fmt.Sprintf("Hi %s!", s.profile.Name)))
		b.WriteString("  ")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s", s.profile.LearningGoal, s.profile.SkillLevel)))
		b.WriteString("\n\n")
	}

	b.WriteString(components.NewProgressBar("Progress", s.stats.OverallProgress, width-4).View())
	b.WriteString("\n")

	avg := "–"
	if s.stats.CompletedQuizzes > 0 {
		avg = fmt.Sprintf("%d%%", s.stats.AverageQuizScore)
	}
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Videos %d/%d   Quizzes %d   Avg score %s   Time %s   Theme %s",
		s.stats.CompletedVideos, s.stats.TotalVideos,
		s.stats.CompletedQuizzes, avg,
		s.stats.TimeSpent.Formatted, s.theme,
	)))
	return b.String()
}

func (s *Screen) renderVideos(width int) string {
	var b strings.Builder
	next := s.orch.Tracker().NextVideo(context.Background())

	for i, vp := range s.learning.Videos {
		status := "○"
		style := theme.Unselected
		switch {
		case vp.QuizCompleted:
			status = "★"
			style = theme.Correct
		case vp.Completed:
			status = "✓"
			style = theme.Correct
		case next != nil && next.VideoID == vp.VideoID:
			status = "▶"
		}

		var extra []string
		if v := s.current.Video(vp.VideoID); v != nil && v.DurationSeconds > 0 {
			extra = append(extra, youtube.FormatDuration(v.DurationSeconds))
		}
		if score, ok := vp.QuizScore(); ok {
			extra = append(extra, fmt.Sprintf("quiz %d%%", score))
		}
		if len(vp.Notes) > 0 {
			extra = append(extra, fmt.Sprintf("%d notes", len(vp.Notes)))
		}

		cursor := "  "
		if i == s.selected {
			cursor = "▸ "
			style = theme.Selected
		}
		title := layout.Truncate(vp.Title, width-30)
		line := style.Render(fmt.Sprintf("%s%s %d. %s", cursor, status, i+1, title))
		if len(extra) > 0 {
			line += "  " + theme.Hint.Render(strings.Join(extra, " · "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(s.learning.Videos) > 0 {
		if v := s.current.Video(s.learning.Videos[s.selected].VideoID); v != nil && v.Reason != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(layout.Truncate("Why: "+v.Reason, width)))
			b.WriteString("\n")
		}
	}
	return components.Panel("Your videos", b.String(), width)
}

func (s *Screen) renderPlan(width int) string {
	plan := s.current.Plan
	var b strings.Builder
	if len(plan.FocusAreas) > 0 {
		b.WriteString(theme.Body.Render("Focus: " + strings.Join(plan.FocusAreas, ", ")))
		b.WriteString("\n")
	}
	if len(plan.Prerequisites) > 0 {
		b.WriteString(theme.Body.Render("Before you start: " + strings.Join(plan.Prerequisites, ", ")))
		b.WriteString("\n")
	}
	if plan.ExpectedOutcome != "" {
		b.WriteString(theme.Subtitle.Render(plan.ExpectedOutcome))
	}
	return components.Panel("Learning plan", b.String(), width)
}
