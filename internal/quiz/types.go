// Package quiz generates comprehension quizzes for a video, drives the
// answer/submit state machine and records results.
package quiz

import (
	"time"

	"github.com/abhisek/learnflow/internal/profile"
)

// QuestionType is the kind of question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"

	// ShortAnswer is accepted by scoring but never generated.
	ShortAnswer QuestionType = "short_answer"
)

// Difficulty is a question's difficulty.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// OptionCount is the number of options on a multiple-choice question.
const OptionCount = 4

// Question is a single quiz question.
type Question struct {
	Type          QuestionType `json:"type"`
	Text          string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
}

// Source records which strategy produced a quiz.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceTemplate Source = "template"
)

// Quiz is an ordered set of questions about one video.
type Quiz struct {
	VideoID    string             `json:"videoId"`
	VideoTitle string             `json:"videoTitle"`
	Questions  []Question         `json:"questions"`
	SkillLevel profile.SkillLevel `json:"skillLevel"`
	CreatedAt  time.Time          `json:"createdAt"`
	Source     Source             `json:"source"`
}

// GenerateInput describes the quiz to generate.
type GenerateInput struct {
	VideoID     string
	Title       string
	Description string
	SkillLevel  profile.SkillLevel
	Count       int
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	Question      string     `json:"question"`
	UserAnswer    string     `json:"userAnswer"`
	CorrectAnswer string     `json:"correctAnswer"`
	IsCorrect     bool       `json:"isCorrect"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Result is a graded quiz submission. Results are never mutated after
// creation.
type Result struct {
	VideoID         string           `json:"videoId"`
	VideoTitle      string           `json:"videoTitle"`
	Score           int              `json:"score"`
	CorrectAnswers  int              `json:"correctAnswers"`
	TotalQuestions  int              `json:"totalQuestions"`
	QuestionResults []QuestionResult `json:"questionResults"`
	Performance     Performance      `json:"performance"`
	TimeSpentMs     int64            `json:"timeSpent"`
	CompletedAt     time.Time        `json:"completedAt"`
}

// Incorrect returns the number of wrong answers.
func (r *Result) Incorrect() int {
	return r.TotalQuestions - r.CorrectAnswers
}

// Config holds LLM quiz generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for quiz generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// DefaultQuestionCount is used when a caller asks for zero questions.
const DefaultQuestionCount = 5
