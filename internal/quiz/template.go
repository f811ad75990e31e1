package quiz

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/abhisek/learnflow/internal/profile"
)

type questionTemplate struct {
	text        func(title string, level profile.SkillLevel) string
	options     [OptionCount]string // first option is correct
	explanation string
}

var templates = []questionTemplate{
	{
		text: func(title string, _ profile.SkillLevel) string {
			return fmt.Sprintf("What is the main topic covered in %q?", title)
		},
		options: [OptionCount]string{
			"The primary concept discussed in the video",
			"A secondary supporting topic",
			"An unrelated concept",
			"Background information only",
		},
		explanation: "This video focuses on the main topic mentioned in the title.",
	},
	{
		text: func(_ string, level profile.SkillLevel) string {
			return fmt.Sprintf("For a %s learner, what is the most important takeaway from this video?", level)
		},
		options: [OptionCount]string{
			"Understanding the fundamental concepts",
			"Memorizing specific details",
			"Skipping to advanced topics",
			"Focusing only on examples",
		},
		explanation: "Building a strong foundation is crucial for effective learning.",
	},
	{
		text: func(string, profile.SkillLevel) string {
			return "What should you do after watching this video?"
		},
		options: [OptionCount]string{
			"Practice the concepts shown",
			"Immediately move to the next video",
			"Skip the practical exercises",
			"Only watch more videos",
		},
		explanation: "Active practice reinforces learning and helps retain knowledge.",
	},
	{
		text: func(_ string, level profile.SkillLevel) string {
			return fmt.Sprintf("How does this video relate to your %s learning journey?", level)
		},
		options: [OptionCount]string{
			"It builds essential foundation knowledge",
			"It's not relevant to my level",
			"It only covers advanced topics",
			"It's purely theoretical",
		},
		explanation: "Each video is selected to match your current skill level and learning goals.",
	},
	{
		text: func(string, profile.SkillLevel) string {
			return "What is the best way to retain information from this video?"
		},
		options: [OptionCount]string{
			"Take notes and practice regularly",
			"Watch it once and move on",
			"Only focus on the conclusion",
			"Skip the explanations",
		},
		explanation: "Active engagement through note-taking and practice improves retention.",
	},
}

// TemplateStrategy builds a deterministic quiz from fixed templates. The
// same title and level always give the same quiz.
type TemplateStrategy struct {
	Now func() time.Time
}

func (s *TemplateStrategy) Name() string { return "template" }

// Generate implements Strategy. It never fails.
func (s *TemplateStrategy) Generate(_ context.Context, in GenerateInput) Outcome {
	return Outcome{Quiz: s.build(in)}
}

func (s *TemplateStrategy) build(in GenerateInput) *Quiz {
	count := in.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	level := in.SkillLevel
	if level == "" {
		level = profile.Beginner
	}
	seed := seedFor(in.Title, level)

	questions := make([]Question, count)
	for i := range questions {
		t := templates[i%len(templates)]
		rot := int((seed + uint32(i)) % OptionCount)
		opts := make([]string, OptionCount)
		for j := range opts {
			opts[(j+rot)%OptionCount] = t.options[j]
		}
		questions[i] = Question{
			Type:          MultipleChoice,
			Text:          t.text(in.Title, level),
			Options:       opts,
			CorrectAnswer: t.options[0],
			Explanation:   t.explanation,
			Difficulty:    difficultyFor(level),
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return &Quiz{
		VideoID:    in.VideoID,
		VideoTitle: in.Title,
		Questions:  questions,
		SkillLevel: level,
		CreatedAt:  now(),
		Source:     SourceTemplate,
	}
}

func seedFor(title string, level profile.SkillLevel) uint32 {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(level))
	return h.Sum32()
}

func difficultyFor(level profile.SkillLevel) Difficulty {
	switch level {
	case profile.Beginner:
		return Easy
	case profile.Expert:
		return Hard
	default:
		return Medium
	}
}
