// Package curation picks the videos that make up a learning path.
package curation

// SelectedVideo is one curated video with the reason it was chosen.
type SelectedVideo struct {
	VideoID  string   `json:"videoId"`
	Title    string   `json:"title"`
	Reason   string   `json:"reason"`
	Order    int      `json:"order"`
	Concepts []string `json:"concepts"`
}

// LearningPlan describes how the selected videos fit together.
type LearningPlan struct {
	Sequence        string   `json:"sequence"`
	FocusAreas      []string `json:"focusAreas"`
	Prerequisites   []string `json:"prerequisites"`
	ExpectedOutcome string   `json:"expectedOutcome"`
}

// Source records which strategy produced a Selection.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Selection is the curated learning path.
type Selection struct {
	Videos []SelectedVideo `json:"selectedVideos"`
	Plan   LearningPlan    `json:"learningPlan"`
	Source Source          `json:"source"`
}

// Candidate is a search result offered to the curator.
type Candidate struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Config holds curation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for curation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
