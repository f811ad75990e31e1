// Package screen defines the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnflow/internal/ui/layout"
)

// Screen is one page of the TUI. The app frame draws the header and
// footer; a screen renders only its body.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BusyReporter is implemented by screens that wait on a background call.
// While Busy reports true the screen ignores input.
type BusyReporter interface {
	Busy() bool
}

// ResumedMsg is delivered to a screen when the screen above it is popped.
// Screens reload anything the popped screen may have changed.
type ResumedMsg struct{}
