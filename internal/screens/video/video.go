// Package video shows the open video with its view-gate countdown, notes
// and the tutor chat.
package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/progress"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
	"github.com/abhisek/learnflow/internal/youtube"
)

type mode int

const (
	modeWatch mode = iota
	modeNote
	modeAsk
)

// timerTickMsg is sent every second while the view gate runs.
type timerTickMsg time.Time

// tutorReplyMsg carries the tutor's answer.
type tutorReplyMsg struct {
	Question string
	Answer   string
}

type exchange struct {
	question string
	answer   string
}

// Screen is the video player stand-in. Playback happens in the browser;
// this screen tracks dwell time and collects notes.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	videoID string
	video   *session.Video
	prog    *progress.VideoProgress

	mode     mode
	input    components.TextInput
	thinking bool
	chat     []exchange
	message  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BusyReporter = (*Screen)(nil)

// New creates a screen for the orchestrator's open video.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	s := &Screen{orch: orch, screens: screens, videoID: orch.CurrentVideoID()}
	s.refresh()
	return s
}

func (s *Screen) refresh() {
	ctx := context.Background()
	if cs := s.orch.CurrentSession(ctx); cs != nil {
		s.video = cs.Video(s.videoID)
	}
	if ls := s.orch.Tracker().Current(ctx); ls != nil {
		s.prog = ls.Video(s.videoID)
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.orch.Gate().Running() {
		return tickCmd()
	}
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *Screen) Title() string {
	return "Watch"
}

// Busy reports whether a background call is in flight.
func (s *Screen) Busy() bool {
	return s.thinking
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.mode != modeWatch {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{}
	if s.completed() {
		hints = append(hints, layout.KeyHint{Key: "q", Description: "Take quiz"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "Mark complete"})
	}
	return append(hints,
		layout.KeyHint{Key: "n", Description: "Add note"},
		layout.KeyHint{Key: "a", Description: "Ask tutor"},
		layout.KeyHint{Key: "Esc", Description: "Dashboard"},
	)
}

func (s *Screen) completed() bool {
	return s.prog != nil && s.prog.Completed
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if !s.orch.Gate().Running() {
			return s, nil
		}
		return s, tickCmd()

	case tutorReplyMsg:
		s.thinking = false
		s.chat = append(s.chat, exchange{question: msg.Question, answer: msg.Answer})
		return s, nil

	case screen.ResumedMsg:
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		if s.thinking {
			return s, nil
		}
		if s.mode != modeWatch {
			return s.handleInputKey(msg)
		}
		return s.handleKey(msg.String())
	}

	if s.mode != modeWatch {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(key string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	s.message = ""

	switch key {
	case "esc":
		s.orch.LeaveVideo()
		return s, nav.Pop()
	case "c":
		if s.completed() {
			return s, nil
		}
		if err := s.orch.CompleteVideo(ctx); err != nil {
			var ge *session.GateError
			if errors.As(err, &ge) {
				s.message = fmt.Sprintf("Keep watching! %ds to go before you can mark this video complete.", ge.Remaining)
			} else {
				s.message = s.orch.Message()
			}
			return s, nil
		}
		s.refresh()
		s.message = "Nice work! Take the quiz to check your understanding."
	case "q":
		if !s.completed() {
			s.message = "Complete the video before taking the quiz."
			return s, nil
		}
		return s, nav.Replace(s.screens.Quiz())
	case "n":
		s.mode = modeNote
		s.input = components.NewTextInput("Note", "What stood out?", 500)
		return s, s.input.Init()
	case "a":
		s.mode = modeAsk
		s.input = components.NewTextInput("Ask the tutor", "Ask anything about this video", 500)
		return s, s.input.Init()
	}
	return s, nil
}

func (s *Screen) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeWatch
		return s, nil
	case "enter":
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			s.input.Err = "Type something first."
			return s, nil
		}
		m := s.mode
		s.mode = modeWatch
		if m == modeNote {
			if err := s.orch.AddNote(context.Background(), text); err != nil {
				s.message = s.orch.Message()
				return s, nil
			}
			s.refresh()
			s.message = "Note saved."
			return s, nil
		}
		s.thinking = true
		orch := s.orch
		return s, func() tea.Msg {
			return tutorReplyMsg{Question: text, Answer: orch.AskTutor(context.Background(), text)}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderVideo(cw))
	b.WriteString("\n")
	b.WriteString(s.renderGate(cw))

	if s.prog != nil && len(s.prog.Notes) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderNotes(cw))
	}
	if len(s.chat) > 0 || s.thinking {
		b.WriteString("\n")
		b.WriteString(s.renderChat(cw))
	}

	if s.mode != modeWatch {
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}
	if s.message != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.message))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) renderVideo(width int) string {
	title := s.videoID
	var b strings.Builder
	if s.video != nil {
		title = s.video.Title
		var meta []string
		if s.video.ChannelTitle != "" {
			meta = append(meta, s.video.ChannelTitle)
		}
		if s.video.DurationSeconds > 0 {
			meta = append(meta, youtube.FormatDuration(s.video.DurationSeconds))
		}
		if len(meta) > 0 {
			b.WriteString(theme.Subtitle.Render(strings.Join(meta, " · ")))
			b.WriteString("\n")
		}
	}
	b.WriteString(theme.Body.Render(youtube.VideoSummary{ID: s.videoID}.URL()))
	b.WriteString("\n")

	if s.video != nil {
		if len(s.video.Concepts) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Body.Render("Key concepts: " + strings.Join(s.video.Concepts, ", ")))
			b.WriteString("\n")
		}
		if desc := strings.TrimSpace(s.video.Description); desc != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(layout.Truncate(desc, 3*width)))
			b.WriteString("\n")
		}
	}
	return components.Panel(layout.Truncate(title, width-6), b.String(), width)
}

func (s *Screen) renderGate(width int) string {
	gate := s.orch.Gate()
	switch {
	case s.completed():
		secs, _ := s.prog.ViewTime()
		line := theme.Correct.Render(fmt.Sprintf("✓ Completed after %s", youtube.FormatDuration(secs)))
		if score, ok := s.prog.QuizScore(); ok {
			line += "  " + theme.Subtitle.Render(fmt.Sprintf("Quiz score %d%%", score))
		}
		return line
	case gate.HasMetMinimum():
		return theme.Correct.Render(fmt.Sprintf("Watched %s · press c when you've finished", youtube.FormatDuration(gate.Elapsed())))
	default:
		minimum := gate.Minimum()
		pct := 0
		if minimum > 0 {
			pct = 100 * gate.Elapsed() / minimum
		}
		return components.NewProgressBar(fmt.Sprintf("Unlocks in %ds", gate.Remaining()), pct, width).View()
	}
}

func (s *Screen) renderNotes(width int) string {
	var b strings.Builder
	for _, n := range s.prog.Notes {
		b.WriteString(theme.Hint.Render(n.Timestamp.Format("15:04")))
		b.WriteString("  ")
		b.WriteString(theme.Body.Render(layout.Truncate(n.Text, width-14)))
		b.WriteString("\n")
	}
	return components.Panel("Notes", b.String(), width)
}

func (s *Screen) renderChat(width int) string {
	var b strings.Builder
	start := 0
	if len(s.chat) > 2 {
		start = len(s.chat) - 2
	}
	for _, ex := range s.chat[start:] {
		b.WriteString(theme.Selected.Render("You: "))
		b.WriteString(theme.Body.Render(ex.question))
		b.WriteString("\n")
		b.WriteString(theme.Title.Render("Tutor: "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width - 6).Render(ex.answer))
		b.WriteString("\n\n")
	}
	if s.thinking {
		b.WriteString(theme.Hint.Render("Tutor is thinking…"))
	}
	return components.Panel("Tutor", strings.TrimRight(b.String(), "\n"), width)
}
