// Package quiz runs a quiz for the open video and shows the graded result.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/quiz"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

type spinnerTickMsg time.Time

// Screen is the quiz runner.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	loading bool
	frame   int
	errMsg  string

	choice  components.MultiChoice
	input   components.TextInput
	message string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BusyReporter = (*Screen)(nil)

// New creates the quiz screen. Generation starts on Init.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	return &Screen{orch: orch, screens: screens}
}

func (s *Screen) Init() tea.Cmd {
	s.loading = true
	orch := s.orch
	return tea.Batch(
		func() tea.Msg {
			q, err := orch.StartQuiz(context.Background())
			return quizReadyMsg{Quiz: q, Err: err}
		},
		spinnerTick(),
	)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *Screen) Title() string {
	return "Quiz"
}

func (s *Screen) Busy() bool {
	return s.loading
}

func (s *Screen) engine() *quiz.Engine {
	return s.orch.Quiz()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return nil
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.engine().State() == quiz.StateSubmitted:
		return []layout.KeyHint{
			{Key: "c", Description: "Continue learning"},
			{Key: "r", Description: "Retake"},
			{Key: "v", Description: "Back to video"},
			{Key: "Esc", Description: "Dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Previous/Next"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case quizReadyMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = s.orch.Message()
			if s.errMsg == "" {
				s.errMsg = msg.Err.Error()
			}
			return s, nil
		}
		return s, s.loadQuestion()

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		if s.errMsg != "" {
			if msg.String() == "esc" {
				return s, nav.Pop()
			}
			return s, nil
		}
		if s.engine().State() == quiz.StateSubmitted {
			return s.handleResultKey(msg.String())
		}
		return s.handleQuestionKey(msg)
	}

	if !s.loading && s.shortAnswer() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) shortAnswer() bool {
	q := s.engine().Current()
	return q != nil && len(q.Options) == 0
}

// loadQuestion prepares the input for the current question.
func (s *Screen) loadQuestion() tea.Cmd {
	e := s.engine()
	q := e.Current()
	if q == nil {
		return nil
	}
	prev, _ := e.AnswerFor(e.Index())
	if len(q.Options) == 0 {
		s.input = components.NewTextInput("", "Type your answer", 200)
		s.input.Model.SetValue(prev)
		return s.input.Init()
	}
	s.choice = components.NewMultiChoice(q.Options, prev)
	return nil
}

func (s *Screen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	e := s.engine()
	key := msg.String()

	switch key {
	case "esc":
		s.orch.LeaveVideo()
		return s, nav.Pop()
	case "ctrl+s":
		s.record()
		return s.submit()
	case "right", "tab":
		s.record()
		if !e.CanAdvance() {
			s.message = "Answer this question to move on."
			return s, nil
		}
		s.message = ""
		e.Next()
		return s, s.loadQuestion()
	case "left", "shift+tab":
		s.record()
		s.message = ""
		if e.Previous() {
			return s, s.loadQuestion()
		}
		return s, nil
	case "enter":
		if s.shortAnswer() {
			s.record()
		} else {
			s.choice, _ = s.choice.Update(msg)
			s.record()
		}
		s.message = ""
		if e.CanAdvance() {
			e.Next()
			return s, s.loadQuestion()
		}
		if e.CanSubmit() {
			s.message = "All questions answered. Press Ctrl+S to submit."
		}
		return s, nil
	}

	if s.shortAnswer() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	s.choice, _ = s.choice.Update(msg)
	s.record()
	return s, nil
}

// record stores the current input as the answer to the current question.
func (s *Screen) record() {
	e := s.engine()
	value := s.choice.Value()
	if s.shortAnswer() {
		value = s.input.Value()
	}
	if value == "" {
		if _, ok := e.AnswerFor(e.Index()); !ok {
			return
		}
	}
	_ = e.Answer(e.Index(), value)
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	_, err := s.orch.SubmitQuiz(context.Background())
	if err != nil {
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			nums := make([]string, len(ve.Unanswered))
			for i, idx := range ve.Unanswered {
				nums[i] = fmt.Sprint(idx + 1)
			}
			s.message = fmt.Sprintf("%s Unanswered: %s.", s.orch.Message(), strings.Join(nums, ", "))
			return s, nil
		}
		s.message = s.orch.Message()
		return s, nil
	}
	s.message = ""
	return s, nil
}

func (s *Screen) handleResultKey(key string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch key {
	case "esc":
		s.orch.LeaveVideo()
		return s, nav.Pop()
	case "r":
		if err := s.orch.RetakeQuiz(); err != nil {
			s.message = s.orch.Message()
			return s, nil
		}
		return s, s.loadQuestion()
	case "v":
		return s, nav.Replace(s.screens.Video())
	case "c":
		next, err := s.orch.ContinueLearning(ctx)
		if err != nil {
			s.message = s.orch.Message()
			return s, nil
		}
		if next == nil {
			return s, nav.Replace(s.screens.Summary())
		}
		return s, nav.Replace(s.screens.Video())
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		body := theme.Selected.Render(spinnerFrames[s.frame]) + " " + theme.Body.Render("Writing your quiz…")
		return components.Center(components.Panel("Quiz", body, cw), width, height)
	}
	if s.errMsg != "" {
		body := theme.ErrorText.Render(s.errMsg) + "\n\n" + theme.Hint.Render("Press Esc to go back.")
		return components.Center(components.Panel("Quiz", body, cw), width, height)
	}

	var content string
	if s.engine().State() == quiz.StateSubmitted {
		content = s.renderResult(cw)
	} else {
		content = s.renderQuestion(cw)
	}
	if s.message != "" {
		content += "\n" + theme.Warning.Render(s.message)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (s *Screen) renderQuestion(width int) string {
	e := s.engine()
	q := e.Current()
	qz := e.Quiz()
	if q == nil || qz == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d · %s", e.Index()+1, len(qz.Questions), q.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width - 6).Render(q.Text))
	b.WriteString("\n\n")
	if len(q.Options) == 0 {
		b.WriteString(s.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(s.choice.View())
	}

	var dots []string
	for i := range qz.Questions {
		_, answered := e.AnswerFor(i)
		switch {
		case i == e.Index():
			dots = append(dots, theme.Selected.Render("◆"))
		case answered:
			dots = append(dots, theme.Correct.Render("●"))
		default:
			dots = append(dots, theme.Hint.Render("○"))
		}
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(dots, " "))

	return components.Panel(layout.Truncate(qz.VideoTitle, width-6), b.String(), width)
}

func (s *Screen) renderResult(width int) string {
	res := s.engine().Result()
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s  %d%%", res.Performance.Badge(), res.Score)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(res.Performance.Message()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d correct · %d incorrect · %s",
		res.CorrectAnswers, res.Incorrect(), quiz.FormatTimeSpent(res.TimeSpentMs))))
	b.WriteString("\n\n")

	for i, qr := range res.QuestionResults {
		mark := theme.Correct.Render("✓")
		if !qr.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, layout.Truncate(qr.Question, width-12)))
		if !qr.IsCorrect {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("     Your answer: %s", qr.UserAnswer)))
			b.WriteString("\n")
			b.WriteString(theme.Correct.Render(fmt.Sprintf("     Correct: %s", qr.CorrectAnswer)))
			b.WriteString("\n")
			if qr.Explanation != "" {
				b.WriteString(theme.Hint.Render("     " + layout.Truncate(qr.Explanation, width-12)))
				b.WriteString("\n")
			}
		}
	}

	if tips := res.Performance.Tips(); len(tips) > 0 {
		b.WriteString("\n")
		for _, tip := range tips {
			b.WriteString(theme.Subtitle.Render("• " + tip))
			b.WriteString("\n")
		}
	}
	return components.Panel("Quiz results", strings.TrimRight(b.String(), "\n"), width)
}
