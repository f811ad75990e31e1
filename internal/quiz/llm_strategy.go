package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/sanitize"
)

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "video-quiz",
	Description: "Multiple choice comprehension questions about a video",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice"},
						},
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 plausible options without letter prefixes",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied exactly from options",
						},
						"explanation": map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required":             []any{"type", "question", "options", "correct_answer", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type quizOutput struct {
	Questions []struct {
		Type          string   `json:"type"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
		Difficulty    string   `json:"difficulty"`
	} `json:"questions"`
}

// LLMStrategy asks the text generation provider for questions.
type LLMStrategy struct {
	Provider llm.Provider
	Config   Config
	Now      func() time.Time
}

func (s *LLMStrategy) Name() string { return "llm" }

// Generate implements Strategy.
func (s *LLMStrategy) Generate(ctx context.Context, in GenerateInput) Outcome {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: buildSystemPrompt(in),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.Config.MaxTokens,
		Temperature: s.Config.Temperature,
	}

	resp, err := s.Provider.Generate(ctx, req)
	if err != nil {
		return failed(s.Name(), err)
	}

	var out quizOutput
	schema := &sanitize.Schema{Name: QuizSchema.Name, Definition: QuizSchema.Definition}
	if err := sanitize.Decode(string(resp.Content), schema, &out); err != nil {
		return failed(s.Name(), err)
	}

	questions := make([]Question, 0, len(out.Questions))
	for _, raw := range out.Questions {
		questions = append(questions, cleanQuestion(Question{
			Type:          QuestionType(raw.Type),
			Text:          raw.Question,
			Options:       raw.Options,
			CorrectAnswer: raw.CorrectAnswer,
			Explanation:   raw.Explanation,
			Difficulty:    Difficulty(raw.Difficulty),
		}))
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Outcome{Quiz: &Quiz{
		VideoID:    in.VideoID,
		VideoTitle: in.Title,
		Questions:  questions,
		SkillLevel: in.SkillLevel,
		CreatedAt:  now(),
		Source:     SourceLLM,
	}}
}

const maxDescriptionRunes = 300

func buildSystemPrompt(in GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple choice questions about %q for %s level learners.\n\n", in.Count, in.Title, in.SkillLevel)
	fmt.Fprintf(&b, `Make sure:
- Questions are relevant to the video content
- Each question has exactly 4 options and the correct answer is copied exactly from them
- Options are realistic and plausible
- Difficulty matches the skill level (%s)
- Explanations are clear and educational
- Use only "easy", "medium", or "hard" for difficulty`, in.SkillLevel)
	return b.String()
}

func buildUserMessage(in GenerateInput) string {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = "No description available"
	} else if r := []rune(desc); len(r) > maxDescriptionRunes {
		desc = string(r[:maxDescriptionRunes])
	}
	return fmt.Sprintf("Generate quiz for: %s\n\nDescription: %s\n\nSkill Level: %s", in.Title, desc, in.SkillLevel)
}
