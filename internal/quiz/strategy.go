package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/logging"
)

// Strategy is one way of producing a quiz.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, in GenerateInput) Outcome
}

// Outcome is either a quiz or the reason a strategy could not produce one.
type Outcome struct {
	Quiz *Quiz
	Err  error
}

// GenerationError wraps a strategy failure.
type GenerationError struct {
	Strategy string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("quiz strategy %q: %v", e.Strategy, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func failed(strategy string, err error) Outcome {
	return Outcome{Err: &GenerationError{Strategy: strategy, Err: err}}
}

// Generator tries each strategy in order and returns the first quiz that
// passes validation. The template strategy always terminates the chain.
type Generator struct {
	strategies []Strategy
	validators []QuestionValidator
	template   *TemplateStrategy
	log        *logging.Logger
}

// NewGenerator builds the chain [LLM, template]. provider may be nil, in
// which case only templates are used.
func NewGenerator(provider llm.Provider, cfg Config, log *logging.Logger, now func() time.Time) *Generator {
	if log == nil {
		log = logging.Nop()
	}
	if now == nil {
		now = time.Now
	}
	tmpl := &TemplateStrategy{Now: now}
	var strategies []Strategy
	if provider != nil {
		strategies = append(strategies, &LLMStrategy{Provider: provider, Config: cfg, Now: now})
	}
	strategies = append(strategies, tmpl)
	return &Generator{
		strategies: strategies,
		validators: DefaultValidators,
		template:   tmpl,
		log:        log.Named("quiz"),
	}
}

// Generate returns a quiz with exactly in.Count questions. It never fails.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) *Quiz {
	if in.Count <= 0 {
		in.Count = DefaultQuestionCount
	}
	for _, s := range g.strategies {
		out := s.Generate(ctx, in)
		err := out.Err
		if err == nil {
			err = ValidateQuiz(out.Quiz, in.Count, g.validators)
		}
		if err != nil {
			g.log.Warn("quiz strategy rejected", "strategy", s.Name(), "video_id", in.VideoID, "reason", llm.Reason(err), "error", err)
			continue
		}
		out.Quiz.Questions = out.Quiz.Questions[:in.Count]
		return out.Quiz
	}
	return g.template.build(in)
}
