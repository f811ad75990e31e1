package curation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/logging"
	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/sanitize"
)

// Curator selects the best videos for a goal, falling back to search
// order when no LLM is configured or its reply is unusable.
type Curator struct {
	provider llm.Provider
	cfg      Config
	log      *logging.Logger
}

// New creates a Curator. provider may be nil, in which case every
// selection uses Fallback.
func New(provider llm.Provider, cfg Config, log *logging.Logger) *Curator {
	if log == nil {
		log = logging.Nop()
	}
	return &Curator{provider: provider, cfg: cfg, log: log.Named("curation")}
}

// Select returns up to count videos from candidates. It never fails.
func (c *Curator) Select(ctx context.Context, candidates []Candidate, goal string, level profile.SkillLevel, count int) *Selection {
	if count <= 0 {
		count = 5
	}
	if len(candidates) == 0 {
		return Fallback(nil, goal, count)
	}
	if c.provider == nil {
		return Fallback(candidates, goal, count)
	}

	sel, err := c.selectWithLLM(ctx, candidates, goal, level, count)
	if err != nil {
		c.log.Warn("curation fell back to search order", "goal", goal, "reason", llm.Reason(err), "error", err)
		return Fallback(candidates, goal, count)
	}
	return sel
}

func (c *Curator) selectWithLLM(ctx context.Context, candidates []Candidate, goal string, level profile.SkillLevel, count int) (*Selection, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCuration)

	userMsg, err := buildUserMessage(candidates)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		System: buildSystemPrompt(goal, level, count),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      SelectionSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("curation: %w", err)
	}

	var out Selection
	schema := &sanitize.Schema{Name: SelectionSchema.Name, Definition: SelectionSchema.Definition}
	if err := sanitize.Decode(string(resp.Content), schema, &out); err != nil {
		return nil, fmt.Errorf("parse curation response: %w", err)
	}

	videos := reconcile(out.Videos, candidates)
	if len(videos) == 0 {
		return nil, fmt.Errorf("curation response selected no known videos")
	}
	if len(videos) > count {
		videos = videos[:count]
	}

	plan := out.Plan
	if strings.TrimSpace(plan.Sequence) == "" {
		plan = DefaultPlan(goal)
	}

	return &Selection{Videos: videos, Plan: plan, Source: SourceLLM}, nil
}

// reconcile keeps only selections that name a candidate, drops duplicates,
// orders by the suggested position and renumbers from 1.
func reconcile(selected []SelectedVideo, candidates []Candidate) []SelectedVideo {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.VideoID] = c
	}

	seen := make(map[string]bool)
	var out []SelectedVideo
	for _, v := range selected {
		cand, ok := byID[v.VideoID]
		if !ok || seen[v.VideoID] {
			continue
		}
		seen[v.VideoID] = true
		if strings.TrimSpace(v.Title) == "" {
			v.Title = cand.Title
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}
