package curation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/learnflow/internal/profile"
)

const maxDescriptionRunes = 200

func buildSystemPrompt(goal string, level profile.SkillLevel, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI learning curator. Analyze the provided YouTube videos and select the %d best videos for learning %s at %s level.\n\n", count, goal, level)
	b.WriteString(`Consider:
- Video quality and educational value
- Appropriate difficulty level
- Clear explanations and good production
- Logical learning progression

Only select videos from the list you are given and copy their videoId exactly. Keep concepts arrays short (max 5 items).`)

	return b.String()
}

func buildUserMessage(candidates []Candidate) (string, error) {
	trimmed := make([]Candidate, len(candidates))
	for i, c := range candidates {
		c.Description = truncateRunes(c.Description, maxDescriptionRunes)
		trimmed[i] = c
	}
	data, err := json.MarshalIndent(trimmed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}
	return "Here are the YouTube videos to analyze:\n\n" + string(data), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
