package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/progress"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newEngine(t *testing.T) (*Engine, *History, *progress.Tracker, *clock) {
	t.Helper()
	kv := kvstore.NewMemory()
	clk := &clock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	tracker := progress.NewTracker(kv, progress.WithClock(clk.now))
	history := NewHistory(kv)
	gen := NewGenerator(nil, DefaultConfig(), nil, clk.now)
	return NewEngine(gen, tracker, history, WithClock(clk.now)), history, tracker, clk
}

func answerAll(t *testing.T, e *Engine, correct bool) {
	t.Helper()
	for i, q := range e.Quiz().Questions {
		a := q.CorrectAnswer
		if !correct {
			for _, o := range q.Options {
				if o != q.CorrectAnswer {
					a = o
					break
				}
			}
		}
		require.NoError(t, e.Answer(i, a))
	}
}

func TestEngine_Navigation(t *testing.T) {
	e, _, _, _ := newEngine(t)
	assert.Equal(t, StateIdle, e.State())
	assert.Nil(t, e.Current())
	assert.ErrorIs(t, e.Answer(0, "x"), ErrNotInProgress)

	e.Start(context.Background(), input(3))
	assert.Equal(t, StateInProgress, e.State())
	assert.Equal(t, 0, e.Index())

	assert.False(t, e.Previous(), "no-op at first question")
	assert.False(t, e.CanAdvance(), "current question unanswered")

	require.NoError(t, e.Answer(0, "anything"))
	assert.True(t, e.CanAdvance())
	assert.True(t, e.Next())
	assert.True(t, e.Next())
	assert.Equal(t, 2, e.Index())
	assert.False(t, e.Next(), "no-op at last question")
	assert.False(t, e.CanAdvance())
	assert.True(t, e.Previous())
	assert.Equal(t, 1, e.Index())

	assert.Error(t, e.Answer(5, "x"))

	require.NoError(t, e.Answer(0, "  "))
	_, ok := e.AnswerFor(0)
	assert.False(t, ok, "blank answer clears")
}

func TestEngine_SubmitRequiresAllAnswers(t *testing.T) {
	e, history, _, _ := newEngine(t)
	e.Start(context.Background(), input(3))
	require.NoError(t, e.Answer(1, e.Quiz().Questions[1].CorrectAnswer))
	assert.False(t, e.CanSubmit())

	res, err := e.Submit(context.Background())
	assert.Nil(t, res)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []int{0, 2}, ve.Unanswered)
	assert.Equal(t, StateInProgress, e.State(), "no state change on validation failure")
	assert.Empty(t, history.List(context.Background()))
}

func TestEngine_SubmitAndRetake(t *testing.T) {
	ctx := context.Background()
	e, history, tracker, clk := newEngine(t)
	tracker.Initialize(ctx, []progress.Video{{ID: "vid-1", Title: "Go channels explained"}})

	e.Start(ctx, input(4))
	answerAll(t, e, false)
	require.NoError(t, e.Answer(0, e.Quiz().Questions[0].CorrectAnswer))
	assert.True(t, e.CanSubmit())

	clk.t = clk.t.Add(90 * time.Second)
	res, err := e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, e.State())
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 4, res.TotalQuestions)
	assert.Equal(t, 25, res.Score)
	assert.Equal(t, Poor, res.Performance)
	assert.Equal(t, int64(90_000), res.TimeSpentMs)
	assert.True(t, res.QuestionResults[0].IsCorrect)
	assert.False(t, res.QuestionResults[1].IsCorrect)

	assert.False(t, e.Next(), "navigation frozen after submit")
	assert.ErrorIs(t, e.Answer(0, "x"), ErrNotInProgress)
	_, err = e.Submit(ctx)
	assert.ErrorIs(t, err, ErrNotInProgress)

	v := tracker.Current(ctx).Video("vid-1")
	score, ok := v.QuizScore()
	require.True(t, ok)
	assert.Equal(t, 25, score)

	questions := e.Quiz().Questions
	require.NoError(t, e.Retake())
	assert.Equal(t, StateInProgress, e.State())
	assert.Equal(t, questions, e.Quiz().Questions, "retake reuses questions")
	assert.False(t, e.CanSubmit(), "answers cleared")
	assert.Equal(t, 0, e.Index())

	answerAll(t, e, true)
	res2, err := e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, res2.Score)
	assert.Equal(t, Excellent, res2.Performance)

	entries := history.ForVideo(ctx, "vid-1")
	require.Len(t, entries, 2, "earlier result kept")
	assert.Equal(t, 25, entries[0].Results.Score)
	assert.Equal(t, 100, entries[1].Results.Score)
	assert.Equal(t, "Go channels explained", entries[1].VideoTitle)

	assert.NoError(t, e.Retake())
	e.Reset()
	assert.Equal(t, StateIdle, e.State())
	assert.ErrorIs(t, e.Retake(), ErrNotSubmitted)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	e, _, tracker, _ := newEngine(t)

	tracker.Initialize(ctx, []progress.Video{
		{ID: "v1", Title: "Intro"},
		{ID: "v2", Title: "Next steps"},
	})

	require.True(t, tracker.MarkVideoCompleted(ctx, "v1", 30))
	stats, ok := tracker.Statistics(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, stats.CompletedVideos)
	assert.Equal(t, 50, stats.OverallProgress)

	e.Start(ctx, GenerateInput{VideoID: "v1", Title: "Intro", Count: 3})
	require.Len(t, e.Quiz().Questions, 3)
	answerAll(t, e, true)
	res, err := e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)

	score, ok := tracker.Current(ctx).Video("v1").QuizScore()
	require.True(t, ok)
	assert.Equal(t, 100, score)

	require.True(t, tracker.MarkVideoCompleted(ctx, "v2", 40))
	assert.True(t, tracker.IsComplete(ctx))
	stats, _ = tracker.Statistics(ctx)
	assert.Equal(t, 100, stats.OverallProgress)
}
