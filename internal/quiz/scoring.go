package quiz

import (
	"fmt"
	"math"

	"github.com/abhisek/learnflow/internal/sanitize"
)

// Performance is the band a score falls into.
type Performance string

const (
	Excellent        Performance = "excellent"
	Good             Performance = "good"
	Satisfactory     Performance = "satisfactory"
	NeedsImprovement Performance = "needs-improvement"
	Poor             Performance = "poor"
)

// PerformanceFor classifies a 0-100 score.
func PerformanceFor(score int) Performance {
	switch {
	case score >= 90:
		return Excellent
	case score >= 80:
		return Good
	case score >= 70:
		return Satisfactory
	case score >= 60:
		return NeedsImprovement
	default:
		return Poor
	}
}

// Badge is a short label for the band.
func (p Performance) Badge() string {
	switch p {
	case Excellent:
		return "Excellent!"
	case Good:
		return "Good Job!"
	case Satisfactory:
		return "Well Done!"
	case NeedsImprovement:
		return "Keep Learning!"
	case Poor:
		return "Practice More!"
	}
	return "Quiz Complete!"
}

// Message is an encouragement line for the band.
func (p Performance) Message() string {
	switch p {
	case Excellent:
		return "Outstanding! You've mastered this topic!"
	case Good:
		return "Great job! You have a solid understanding."
	case Satisfactory:
		return "Good work! You're on the right track."
	case NeedsImprovement:
		return "Keep practicing! You're getting there."
	case Poor:
		return "Don't give up! Learning takes time and effort."
	}
	return "Quiz completed!"
}

// Tips returns improvement suggestions for the band.
func (p Performance) Tips() []string {
	switch p {
	case Excellent:
		return []string{"Consider exploring advanced topics", "Share your knowledge with others", "Apply what you've learned in real projects"}
	case Good:
		return []string{"Review any missed concepts", "Practice with additional exercises", "Continue building on this foundation"}
	case Satisfactory:
		return []string{"Review the video content again", "Focus on areas where you struggled", "Practice more examples"}
	case NeedsImprovement:
		return []string{"Rewatch the video carefully", "Take detailed notes", "Ask for help with difficult concepts"}
	default:
		return []string{"Start with simpler concepts", "Break down complex topics", "Consider seeking additional resources"}
	}
}

// CheckAnswer reports whether answer matches q's correct answer after
// whitespace trimming, NFC normalization and case folding. Option labels
// are stripped when the quiz is validated, not here.
func CheckAnswer(q Question, answer string) bool {
	if q.CorrectAnswer == "" || answer == "" {
		return false
	}
	switch q.Type {
	case MultipleChoice, ShortAnswer:
		return sanitize.Equivalent(answer, q.CorrectAnswer)
	}
	return false
}

// Score returns round(100*correct/total), or 0 for an empty quiz.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// FormatTimeSpent renders milliseconds as m:ss.
func FormatTimeSpent(ms int64) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
