package curation

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnflow/internal/profile"
)

const maxFallbackConcepts = 3

var goalConcepts = map[string][]string{
	"JavaScript Programming": {"variables", "functions", "objects", "arrays", "loops", "conditions"},
	"Python Programming":     {"variables", "functions", "classes", "loops", "data structures"},
	"Web Development":        {"HTML", "CSS", "JavaScript", "responsive design", "frontend"},
	"Machine Learning":       {"algorithms", "models", "data processing", "neural networks"},
	"Data Science":           {"analysis", "visualization", "statistics", "pandas", "numpy"},
	"UI/UX Design":           {"user interface", "user experience", "design principles", "prototyping"},
}

var genericConcepts = []string{"fundamentals", "basics", "concepts"}

// Fallback selects the first count distinct candidates in search order.
// It never fails and is used whenever the LLM is unavailable or its reply
// unusable.
func Fallback(candidates []Candidate, goal string, count int) *Selection {
	videos := make([]SelectedVideo, 0, min(max(count, 0), len(candidates)))
	seen := make(map[string]bool)
	for _, c := range candidates {
		if len(videos) >= count {
			break
		}
		if seen[c.VideoID] {
			continue
		}
		seen[c.VideoID] = true
		n := len(videos) + 1
		videos = append(videos, SelectedVideo{
			VideoID:  c.VideoID,
			Title:    c.Title,
			Reason:   fmt.Sprintf("Selected as video %d for %s learning", n, goal),
			Order:    n,
			Concepts: ExtractConcepts(c.Title, goal),
		})
	}

	return &Selection{
		Videos: videos,
		Plan: LearningPlan{
			Sequence:        "Progressive learning path for " + goal,
			FocusAreas:      []string{goal, "Practical Application", "Best Practices"},
			Prerequisites:   prerequisites(goal),
			ExpectedOutcome: fmt.Sprintf("Master %s fundamentals and gain practical skills", goal),
		},
		Source: SourceFallback,
	}
}

// DefaultPlan is used when the LLM selected videos but returned no plan.
func DefaultPlan(goal string) LearningPlan {
	return LearningPlan{
		Sequence:        "Progressive learning path for " + goal,
		FocusAreas:      []string{goal, "Practical Application"},
		Prerequisites:   prerequisites(goal),
		ExpectedOutcome: fmt.Sprintf("Master %s fundamentals", goal),
	}
}

// ExtractConcepts finds known concepts for goal mentioned in title. At most
// three are returned; titles without a match get a generic pair.
func ExtractConcepts(title, goal string) []string {
	keywords, ok := goalConcepts[goal]
	if !ok {
		if g, found := profile.LookupGoal(goal); found {
			keywords = goalConcepts[g.Name]
		}
	}
	if len(keywords) == 0 {
		keywords = genericConcepts
	}

	lower := strings.ToLower(title)
	var concepts []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			concepts = append(concepts, kw)
			if len(concepts) == maxFallbackConcepts {
				break
			}
		}
	}
	if len(concepts) == 0 {
		return []string{"Core concepts", "Fundamentals"}
	}
	return concepts
}

func prerequisites(goal string) []string {
	if g, ok := profile.LookupGoal(goal); ok && len(g.Prerequisites) > 0 {
		return append([]string(nil), g.Prerequisites...)
	}
	return []string{}
}
