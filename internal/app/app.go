package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/router"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/dashboard"
	"github.com/abhisek/learnflow/internal/screens/history"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/screens/onboarding"
	"github.com/abhisek/learnflow/internal/screens/path"
	quizscreen "github.com/abhisek/learnflow/internal/screens/quiz"
	"github.com/abhisek/learnflow/internal/screens/summary"
	"github.com/abhisek/learnflow/internal/screens/video"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/layout"
)

// factory builds screens bound to one orchestrator.
type factory struct {
	orch *session.Orchestrator
}

var _ nav.Screens = factory{}

func (f factory) Onboarding() screen.Screen { return onboarding.New(f.orch, f) }
func (f factory) Path() screen.Screen       { return path.New(f.orch, f) }
func (f factory) Dashboard() screen.Screen  { return dashboard.New(f.orch, f) }
func (f factory) Video() screen.Screen      { return video.New(f.orch, f) }
func (f factory) Quiz() screen.Screen       { return quizscreen.New(f.orch, f) }
func (f factory) Summary() screen.Screen    { return summary.New(f.orch, f) }
func (f factory) History() screen.Screen    { return history.New(f.orch.History()) }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	orch   *session.Orchestrator
	router *router.Router
	width  int
	height int
}

// newAppModel resumes the persisted session and opens the matching screen.
func newAppModel(orch *session.Orchestrator) AppModel {
	section := orch.Resume(context.Background())
	f := factory{orch: orch}
	return AppModel{
		orch:   orch,
		router: router.New(nav.For(f, section)),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.orch.Close()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := m.status()
	if b, ok := active.(screen.BusyReporter); ok && b.Busy() {
		status = "working… " + status
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// status is the header's right-hand text.
func (m AppModel) status() string {
	ctx := context.Background()
	p := m.orch.Profile(ctx)
	if p == nil {
		return ""
	}
	stats, ok := m.orch.Tracker().Statistics(ctx)
	if !ok {
		return p.Name + "  "
	}
	return fmt.Sprintf("%s · %d%%  ", p.Name, stats.OverallProgress)
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(orch *session.Orchestrator) error {
	defer orch.Close()
	p := tea.NewProgram(newAppModel(orch))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
