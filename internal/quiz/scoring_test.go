package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceFor(t *testing.T) {
	tests := []struct {
		score int
		want  Performance
	}{
		{100, Excellent},
		{90, Excellent},
		{89, Good},
		{80, Good},
		{79, Satisfactory},
		{70, Satisfactory},
		{69, NeedsImprovement},
		{60, NeedsImprovement},
		{59, Poor},
		{0, Poor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PerformanceFor(tt.score), "score %d", tt.score)
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(0, 0))
	assert.Equal(t, 67, Score(2, 3))
	assert.Equal(t, 33, Score(1, 3))
	assert.Equal(t, 100, Score(5, 5))
	for total := 1; total <= 12; total++ {
		for correct := 0; correct <= total; correct++ {
			s := Score(correct, total)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	mc := Question{Type: MultipleChoice, CorrectAnswer: "Practice the concepts shown"}
	tests := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{"exact", mc, "Practice the concepts shown", true},
		{"case and space", mc, "  practice THE concepts shown ", true},
		{"wrong", mc, "Skip the practical exercises", false},
		{"blank", mc, "", false},
		{"short answer", Question{Type: ShortAnswer, CorrectAnswer: "Goroutine"}, "goroutine", true},
		{"unknown type", Question{Type: "essay", CorrectAnswer: "x"}, "x", false},
		{"nfc", Question{Type: ShortAnswer, CorrectAnswer: "caf\u00e9"}, "cafe\u0301", true},
		{"label kept", mc, "A) Practice the concepts shown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAnswer(tt.q, tt.answer))
		})
	}
}

func TestPerformanceText(t *testing.T) {
	for _, p := range []Performance{Excellent, Good, Satisfactory, NeedsImprovement, Poor} {
		assert.NotEmpty(t, p.Badge())
		assert.NotEmpty(t, p.Message())
		assert.Len(t, p.Tips(), 3)
	}
	assert.Equal(t, "1:05", FormatTimeSpent(65_400))
}
