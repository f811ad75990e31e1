// Package path runs the search and curation step that builds a learning
// path.
package path

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// builtMsg carries the outcome of BuildLearningPath.
type builtMsg struct {
	Session *session.CurrentSession
	Err     error
}

type spinnerTickMsg time.Time

// Screen shows progress while the learning path is built and the error
// when it could not be.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	loading bool
	frame   int
	goal    string
	errMsg  string
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BusyReporter = (*Screen)(nil)

// New creates the path builder screen. Building starts on Init.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	s := &Screen{orch: orch, screens: screens}
	if p := orch.Profile(context.Background()); p != nil {
		s.goal = p.LearningGoal
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.build()
}

func (s *Screen) Title() string {
	return "Building your path"
}

// Busy reports whether a background call is in flight.
func (s *Screen) Busy() bool {
	return s.loading
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.loading {
		return nil
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Retry"},
		{Key: "e", Description: "Edit profile"},
	}
}

func (s *Screen) build() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	s.err = nil
	orch := s.orch
	return tea.Batch(
		func() tea.Msg {
			cs, err := orch.BuildLearningPath(context.Background())
			return builtMsg{Session: cs, Err: err}
		},
		spinnerTick(),
	)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case builtMsg:
		s.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, session.ErrNoProfile) {
				return s, nav.Reset(s.screens.Onboarding())
			}
			s.err = msg.Err
			s.errMsg = s.orch.Message()
			if s.errMsg == "" {
				s.errMsg = msg.Err.Error()
			}
			return s, nil
		}
		return s, nav.Reset(s.screens.Dashboard())

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "r":
			return s, s.build()
		case "e":
			return s, nav.Reset(s.screens.Onboarding())
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	if s.goal != "" {
		b.WriteString(theme.Subtitle.Render("Goal: " + s.goal))
		b.WriteString("\n\n")
	}

	if s.loading {
		b.WriteString(theme.Selected.Render(spinnerFrames[s.frame]))
		b.WriteString(" ")
		b.WriteString(theme.Body.Render("Searching for videos and picking the best ones for you…"))
		return components.Center(components.Panel("Building your learning path", b.String(), cw), width, height)
	}

	b.WriteString(theme.ErrorText.Render(s.errMsg))
	if s.err != nil && errors.Is(s.err, session.ErrNoSearcher) {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Set YOUTUBE_API_KEY or add api_key under [youtube] in the config file."))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press r to try again or e to change your goal."))
	return components.Center(components.Panel("Something went wrong", b.String(), cw), width, height)
}
