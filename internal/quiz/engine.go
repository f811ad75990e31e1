package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/learnflow/internal/logging"
)

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateInProgress
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in-progress"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrNotInProgress is returned by operations that need an active quiz.
var ErrNotInProgress = errors.New("quiz: no quiz in progress")

// ErrNotSubmitted is returned by Retake before a submission.
var ErrNotSubmitted = errors.New("quiz: quiz not submitted")

// ValidationError is returned by Submit while questions are unanswered.
type ValidationError struct {
	Unanswered []int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please answer all questions before submitting (%d unanswered)", len(e.Unanswered))
}

// ScoreRecorder receives the score of every submitted quiz.
type ScoreRecorder interface {
	UpdateQuizScore(ctx context.Context, videoID string, score int) bool
}

// Engine runs one quiz at a time through Idle, Loading, InProgress and
// Submitted.
type Engine struct {
	gen     *Generator
	scores  ScoreRecorder
	history *History
	log     *logging.Logger
	now     func() time.Time

	state     State
	quiz      *Quiz
	index     int
	answers   map[int]string
	startedAt time.Time
	result    *Result
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an idle engine. scores and history may be nil.
func NewEngine(gen *Generator, scores ScoreRecorder, history *History, opts ...EngineOption) *Engine {
	e := &Engine{
		gen:     gen,
		scores:  scores,
		history: history,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start generates a quiz and begins it. The engine is Loading while the
// generator runs.
func (e *Engine) Start(ctx context.Context, in GenerateInput) *Quiz {
	e.state = StateLoading
	q := e.gen.Generate(ctx, in)
	e.Begin(q)
	return q
}

// Begin starts an already generated quiz.
func (e *Engine) Begin(q *Quiz) {
	e.quiz = q
	e.state = StateInProgress
	e.index = 0
	e.answers = make(map[int]string)
	e.startedAt = e.now()
	e.result = nil
}

// Reset drops the active quiz.
func (e *Engine) Reset() {
	*e = Engine{gen: e.gen, scores: e.scores, history: e.history, log: e.log, now: e.now}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Quiz returns the active quiz, or nil.
func (e *Engine) Quiz() *Quiz { return e.quiz }

// Index returns the current 0-based question index.
func (e *Engine) Index() int { return e.index }

// Current returns the question at the current index, or nil.
func (e *Engine) Current() *Question {
	if e.quiz == nil || len(e.quiz.Questions) == 0 {
		return nil
	}
	return &e.quiz.Questions[e.index]
}

// Result returns the last submission result, or nil.
func (e *Engine) Result() *Result { return e.result }

// AnswerFor returns the recorded answer for question i.
func (e *Engine) AnswerFor(i int) (string, bool) {
	a, ok := e.answers[i]
	return a, ok
}

// Answer records value for question i. A blank value clears the answer.
func (e *Engine) Answer(i int, value string) error {
	if e.state != StateInProgress {
		return ErrNotInProgress
	}
	if i < 0 || i >= len(e.quiz.Questions) {
		return fmt.Errorf("quiz: question index %d out of range", i)
	}
	if strings.TrimSpace(value) == "" {
		delete(e.answers, i)
		return nil
	}
	e.answers[i] = value
	return nil
}

// Next moves to the following question. It is a no-op on the last one.
func (e *Engine) Next() bool {
	if e.state != StateInProgress || e.index >= len(e.quiz.Questions)-1 {
		return false
	}
	e.index++
	return true
}

// Previous moves to the preceding question. It is a no-op on the first.
func (e *Engine) Previous() bool {
	if e.state != StateInProgress || e.index == 0 {
		return false
	}
	e.index--
	return true
}

// CanAdvance reports whether the current question is answered and is not
// the last.
func (e *Engine) CanAdvance() bool {
	if e.state != StateInProgress {
		return false
	}
	_, answered := e.answers[e.index]
	return answered && e.index < len(e.quiz.Questions)-1
}

// CanSubmit reports whether every question is answered.
func (e *Engine) CanSubmit() bool {
	return e.state == StateInProgress && len(e.unanswered()) == 0
}

func (e *Engine) unanswered() []int {
	var out []int
	for i := range e.quiz.Questions {
		if _, ok := e.answers[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// Submit grades the quiz, appends it to the history and records the
// score. While any question is unanswered a *ValidationError is returned
// and nothing changes.
func (e *Engine) Submit(ctx context.Context) (*Result, error) {
	if e.state != StateInProgress {
		return nil, ErrNotInProgress
	}
	if missing := e.unanswered(); len(missing) > 0 {
		return nil, &ValidationError{Unanswered: missing}
	}

	now := e.now()
	res := &Result{
		VideoID:         e.quiz.VideoID,
		VideoTitle:      e.quiz.VideoTitle,
		TotalQuestions:  len(e.quiz.Questions),
		QuestionResults: make([]QuestionResult, 0, len(e.quiz.Questions)),
		TimeSpentMs:     now.Sub(e.startedAt).Milliseconds(),
		CompletedAt:     now,
	}
	for i, q := range e.quiz.Questions {
		answer := e.answers[i]
		ok := CheckAnswer(q, answer)
		if ok {
			res.CorrectAnswers++
		}
		res.QuestionResults = append(res.QuestionResults, QuestionResult{
			Question:      q.Text,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ok,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
		})
	}
	res.Score = Score(res.CorrectAnswers, res.TotalQuestions)
	res.Performance = PerformanceFor(res.Score)

	if e.history != nil && !e.history.Append(ctx, HistoryEntry{
		VideoID:     res.VideoID,
		VideoTitle:  res.VideoTitle,
		Results:     *res,
		CompletedAt: now,
	}) {
		e.log.Warn("quiz history not saved", "video_id", res.VideoID)
	}
	if e.scores != nil && !e.scores.UpdateQuizScore(ctx, res.VideoID, res.Score) {
		e.log.Warn("quiz score not recorded", "video_id", res.VideoID)
	}

	e.result = res
	e.state = StateSubmitted
	return res, nil
}

// Retake restarts the submitted quiz with the same questions. Previous
// results stay in the history.
func (e *Engine) Retake() error {
	if e.state != StateSubmitted {
		return ErrNotSubmitted
	}
	e.Begin(e.quiz)
	return nil
}
