// Package nav lets screens open each other without import cycles.
package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnflow/internal/router"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/session"
)

// Screens builds a fresh screen for each part of the flow.
type Screens interface {
	Onboarding() screen.Screen
	Path() screen.Screen
	Dashboard() screen.Screen
	Video() screen.Screen
	Quiz() screen.Screen
	Summary() screen.Screen
	History() screen.Screen
}

// For returns the screen that shows section.
func For(s Screens, section session.Section) screen.Screen {
	switch section {
	case session.SectionOnboarding:
		return s.Onboarding()
	case session.SectionSearch, session.SectionSelection:
		return s.Path()
	case session.SectionVideo:
		return s.Video()
	case session.SectionQuiz:
		return s.Quiz()
	case session.SectionSummary:
		return s.Summary()
	default:
		return s.Dashboard()
	}
}

// Push returns a command that pushes next.
func Push(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// Replace returns a command that swaps the active screen for next.
func Replace(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// Reset returns a command that makes next the only screen.
func Reset(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

// Pop returns a command that closes the active screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
