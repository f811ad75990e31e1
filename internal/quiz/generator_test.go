package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/profile"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

func input(count int) GenerateInput {
	return GenerateInput{
		VideoID:    "vid-1",
		Title:      "Go channels explained",
		SkillLevel: profile.Beginner,
		Count:      count,
	}
}

func llmQuestion(text string, options []string, correct string) map[string]any {
	opts := make([]any, len(options))
	for i, o := range options {
		opts[i] = o
	}
	return map[string]any{
		"type":           "multiple_choice",
		"question":       text,
		"options":        opts,
		"correct_answer": correct,
		"explanation":    "because",
		"difficulty":     "medium",
	}
}

func assertWellFormed(t *testing.T, q *Quiz, count int) {
	t.Helper()
	require.NotNil(t, q)
	require.Len(t, q.Questions, count)
	for i := range q.Questions {
		for _, v := range DefaultValidators {
			assert.Nil(t, v.Validate(&q.Questions[i]), "question %d", i)
		}
		assert.Contains(t, q.Questions[i].Options, q.Questions[i].CorrectAnswer)
	}
}

func TestGenerator_LLM(t *testing.T) {
	opts := []string{"A Buffered", "B Unbuffered", "C Nil", "D Closed"}
	var qs []any
	for i := 0; i < 4; i++ {
		qs = append(qs, llmQuestion("Which channel blocks?", opts, "B Unbuffered"))
	}
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"questions": qs}))

	g := NewGenerator(mock, DefaultConfig(), nil, fixedNow)
	q := g.Generate(context.Background(), input(3))

	assert.Equal(t, SourceLLM, q.Source)
	assertWellFormed(t, q, 3)
	assert.Equal(t, []string{"Buffered", "Unbuffered", "Nil", "Closed"}, q.Questions[0].Options)
	assert.Equal(t, "Unbuffered", q.Questions[0].CorrectAnswer)
	assert.Equal(t, "vid-1", q.VideoID)
	assert.Equal(t, fixedNow(), q.CreatedAt)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Contains(t, req.Messages[0].Content, "Description: No description available")
}

func TestGenerator_FallbackTotality(t *testing.T) {
	good := []string{"one", "two", "three", "four"}
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"not json", llm.MockText("not json at all")},
		{"provider error", llm.MockResponse{Err: errors.New("boom")}},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{}}},
		{"too few questions", llm.MockJSON(map[string]any{"questions": []any{llmQuestion("q", good, "one")}})},
		{"answer not in options", llm.MockJSON(map[string]any{"questions": []any{
			llmQuestion("q1", good, "five"), llmQuestion("q2", good, "one"), llmQuestion("q3", good, "two"),
		}})},
		{"three options", llm.MockJSON(map[string]any{"questions": []any{
			llmQuestion("q1", good[:3], "one"), llmQuestion("q2", good, "one"), llmQuestion("q3", good, "two"),
		}})},
		{"wrong shape", llm.MockJSON(map[string]any{"quiz": "nope"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(llm.NewMockProvider(tt.resp), DefaultConfig(), nil, fixedNow)
			q := g.Generate(context.Background(), input(3))
			assert.Equal(t, SourceTemplate, q.Source)
			assertWellFormed(t, q, 3)
		})
	}
}

func TestGenerator_NoProvider(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig(), nil, fixedNow)
	q := g.Generate(context.Background(), input(0))
	assertWellFormed(t, q, DefaultQuestionCount)
}

func TestTemplateStrategy_Deterministic(t *testing.T) {
	s := &TemplateStrategy{Now: fixedNow}
	a := s.build(input(7))
	b := s.build(input(7))
	assert.Equal(t, a, b)
	assertWellFormed(t, a, 7)
	assert.Equal(t, Easy, a.Questions[0].Difficulty)

	expert := input(2)
	expert.SkillLevel = profile.Expert
	e := s.build(expert)
	assert.Equal(t, Hard, e.Questions[0].Difficulty)
	assert.Contains(t, e.Questions[1].Text, "expert learner")
}

func TestCleanQuestion(t *testing.T) {
	tests := []struct {
		name        string
		options     []string
		correct     string
		wantOptions []string
		wantCorrect string
	}{
		{
			name:        "labels stripped",
			options:     []string{"A) red", "B) green", "C) blue", "D) black"},
			correct:     "C) blue",
			wantOptions: []string{"red", "green", "blue", "black"},
			wantCorrect: "blue",
		},
		{
			name:        "bare letter answer",
			options:     []string{"A red", "B green", "C blue", "D black"},
			correct:     "b",
			wantOptions: []string{"red", "green", "blue", "black"},
			wantCorrect: "green",
		},
		{
			name:        "unlabeled sentence kept",
			options:     []string{"A loop repeats", "Maps are ordered", "Slices are arrays", "Nothing"},
			correct:     " a loop repeats ",
			wantOptions: []string{"A loop repeats", "Maps are ordered", "Slices are arrays", "Nothing"},
			wantCorrect: "A loop repeats",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cleanQuestion(Question{Text: "q", Options: tt.options, CorrectAnswer: tt.correct})
			assert.Equal(t, tt.wantOptions, q.Options)
			assert.Equal(t, tt.wantCorrect, q.CorrectAnswer)
			assert.Equal(t, MultipleChoice, q.Type)
			assert.Equal(t, Medium, q.Difficulty)
		})
	}
}

func TestValidateQuiz(t *testing.T) {
	q := &Quiz{Questions: []Question{
		{Type: MultipleChoice, Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "e", Difficulty: Easy},
	}}
	err := ValidateQuiz(q, 1, DefaultValidators)
	var qe *QuestionError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "answer-membership", qe.Validator)

	q.Questions[0].Type = ShortAnswer
	require.ErrorAs(t, ValidateQuiz(q, 1, DefaultValidators), &qe)
	assert.Equal(t, "structural", qe.Validator)

	assert.Error(t, ValidateQuiz(q, 2, nil))
	assert.Error(t, ValidateQuiz(nil, 1, nil))
}
