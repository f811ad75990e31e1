package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnflow/internal/sanitize"
)

// QuestionValidator checks a single generated question.
type QuestionValidator interface {
	// Name identifies the validator in errors and logs.
	Name() string

	// Validate returns nil when q is usable.
	Validate(q *Question) *QuestionError
}

// QuestionError describes why a generated question is unusable.
type QuestionError struct {
	Validator string
	Index     int
	Message   string
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %d: validator %q: %s", e.Index+1, e.Validator, e.Message)
}

// DefaultValidators is the predicate applied to every strategy's output.
var DefaultValidators = []QuestionValidator{
	&StructuralValidator{},
	&AnswerMembershipValidator{},
}

// StructuralValidator checks required fields and option count.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *QuestionError {
	if strings.TrimSpace(q.Text) == "" {
		return &QuestionError{Validator: v.Name(), Message: "question text is empty"}
	}
	if !q.Difficulty.Valid() {
		return &QuestionError{Validator: v.Name(), Message: fmt.Sprintf("unknown difficulty %q", q.Difficulty)}
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) != OptionCount {
			return &QuestionError{Validator: v.Name(), Message: fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options))}
		}
		for i, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return &QuestionError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
			}
		}
	case ShortAnswer:
		return &QuestionError{Validator: v.Name(), Message: "short answer questions are not generated"}
	default:
		return &QuestionError{Validator: v.Name(), Message: fmt.Sprintf("unknown question type %q", q.Type)}
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return &QuestionError{Validator: v.Name(), Message: "correct answer is empty"}
	}
	return nil
}

// AnswerMembershipValidator checks that the correct answer is one of the
// options after normalization.
type AnswerMembershipValidator struct{}

func (v *AnswerMembershipValidator) Name() string { return "answer-membership" }

func (v *AnswerMembershipValidator) Validate(q *Question) *QuestionError {
	if q.Type != MultipleChoice {
		return nil
	}
	want := sanitize.StripOptionLabel(q.CorrectAnswer)
	for _, o := range q.Options {
		if sanitize.Equivalent(sanitize.StripOptionLabel(o), want) {
			return nil
		}
	}
	return &QuestionError{Validator: v.Name(), Message: fmt.Sprintf("correct answer %q is not among the options", q.CorrectAnswer)}
}

// ValidateQuiz applies validators to every question and checks that at
// least count questions are present.
func ValidateQuiz(q *Quiz, count int, validators []QuestionValidator) error {
	if q == nil {
		return fmt.Errorf("no quiz")
	}
	if len(q.Questions) < count {
		return fmt.Errorf("expected at least %d questions, got %d", count, len(q.Questions))
	}
	for i := range q.Questions {
		for _, v := range validators {
			if qe := v.Validate(&q.Questions[i]); qe != nil {
				qe.Index = i
				return qe
			}
		}
	}
	return nil
}

// cleanQuestion normalizes a raw generated question: option labels are
// removed when every option carries its positional A-D label, and the
// correct answer is rewritten to the exact text of the option it names.
func cleanQuestion(q Question) Question {
	if q.Type == "" {
		q.Type = MultipleChoice
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Explanation = strings.TrimSpace(q.Explanation)
	if q.Explanation == "" {
		q.Explanation = "No explanation provided"
	}
	if q.Difficulty == "" {
		q.Difficulty = Medium
	}
	q.Difficulty = Difficulty(strings.ToLower(string(q.Difficulty)))

	labeled := allLabeled(q.Options)
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		if labeled {
			opts[i] = sanitize.StripOptionLabel(o)
		} else {
			opts[i] = strings.TrimSpace(o)
		}
	}
	q.Options = opts
	q.CorrectAnswer = resolveAnswer(strings.TrimSpace(q.CorrectAnswer), opts)
	return q
}

func allLabeled(options []string) bool {
	if len(options) == 0 {
		return false
	}
	for i, o := range options {
		o = strings.TrimSpace(o)
		if i >= OptionCount || len(o) < 2 || !strings.EqualFold(o[:1], string(rune('A'+i))) {
			return false
		}
		if sanitize.StripOptionLabel(o) == o {
			return false
		}
	}
	return true
}

// resolveAnswer maps a raw correct answer onto an option's text. The raw
// answer may be the option text, a labeled option or a bare letter.
func resolveAnswer(raw string, options []string) string {
	for _, candidate := range []string{raw, sanitize.StripOptionLabel(raw)} {
		for _, o := range options {
			if sanitize.Equivalent(o, candidate) {
				return o
			}
		}
	}
	letter := strings.TrimRight(raw, ").: ")
	if len(letter) == 1 {
		idx := int(strings.ToUpper(letter)[0]) - 'A'
		if idx >= 0 && idx < len(options) {
			return options[idx]
		}
	}
	return raw
}
