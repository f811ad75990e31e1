package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
)

// SummarySource records how the summary text was produced.
type SummarySource string

const (
	SummaryLLM      SummarySource = "llm"
	SummaryFallback SummarySource = "fallback"
)

// LearningSummary is shown when every video is complete.
type LearningSummary struct {
	Profile    *profile.UserProfile
	Statistics progress.Statistics
	Badges     []progress.Badge
	Text       string
	Source     SummarySource
}

const summarySystemPrompt = `You are an AI learning coach providing personalized feedback to students. Be encouraging, specific, and motivational.`

// Summary builds the end-of-path summary. The LLM writes the text when
// available; otherwise a fixed template is filled in.
func (o *Orchestrator) Summary(ctx context.Context) (*LearningSummary, error) {
	p := o.profiles.Load(ctx)
	if p == nil {
		return nil, o.fail("Please complete onboarding first.", ErrNoProfile)
	}
	stats, ok := o.tracker.Statistics(ctx)
	if !ok {
		return nil, o.fail("Start a learning session first.", ErrNoSession)
	}
	o.gate.Stop()
	o.section = SectionSummary

	sum := &LearningSummary{Profile: p, Statistics: stats, Badges: progress.Badges(stats)}
	if o.provider != nil {
		req := llm.Request{
			System:      summarySystemPrompt,
			Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSummaryPrompt(p, stats)}},
			MaxTokens:   o.cfg.MaxTokens,
			Temperature: o.cfg.Temperature,
		}
		resp, err := o.provider.Generate(llm.WithPurpose(ctx, llm.PurposeSummary), req)
		if err == nil && strings.TrimSpace(resp.Text()) != "" {
			sum.Text = strings.TrimSpace(resp.Text())
			sum.Source = SummaryLLM
			return sum, nil
		}
		if err != nil {
			o.log.Warn("summary fell back to template", "reason", llm.Reason(err), "error", err)
		}
	}

	sum.Text = summaryFallback(p, stats)
	sum.Source = SummaryFallback
	return sum, nil
}

func buildSummaryPrompt(p *profile.UserProfile, s progress.Statistics) string {
	var b strings.Builder
	b.WriteString("Generate a comprehensive learning summary for a student who has completed their learning journey.\n\n")
	b.WriteString("Student Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Learning Goal: %s\n", p.LearningGoal)
	fmt.Fprintf(&b, "- Skill Level: %s\n", p.SkillLevel)
	fmt.Fprintf(&b, "- Videos Completed: %d/%d\n", s.CompletedVideos, s.TotalVideos)
	fmt.Fprintf(&b, "- Overall Progress: %d%%\n", s.OverallProgress)
	fmt.Fprintf(&b, "- Average Quiz Score: %d%%\n", s.AverageQuizScore)
	b.WriteString(`
Please provide:
1. A congratulatory message
2. Key achievements and progress made
3. Skills acquired and knowledge gained
4. Areas of strength based on performance
5. Suggestions for continued learning
6. Motivational closing

Keep the tone encouraging and personalized. Use plain text.`)
	return b.String()
}

func summaryFallback(p *profile.UserProfile, s progress.Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Congratulations, %s!\n\n", p.Name)
	fmt.Fprintf(&b, "You've completed your %s learning journey. Here's what you've accomplished:\n\n", p.LearningGoal)
	b.WriteString("Progress made:\n")
	fmt.Fprintf(&b, "- Completed %d out of %d videos\n", s.CompletedVideos, s.TotalVideos)
	fmt.Fprintf(&b, "- Achieved %d%% overall progress\n", s.OverallProgress)
	if s.CompletedQuizzes > 0 {
		fmt.Fprintf(&b, "- Averaged %d%% across %d quizzes\n", s.AverageQuizScore, s.CompletedQuizzes)
	}
	fmt.Fprintf(&b, "- Demonstrated %s level understanding\n\n", p.SkillLevel)
	b.WriteString("Key achievements:\n")
	fmt.Fprintf(&b, "- Built a solid foundation in %s\n", p.LearningGoal)
	b.WriteString("- Developed practical skills through video lessons\n")
	b.WriteString("- Showed commitment to continuous learning\n\n")
	b.WriteString("Next steps:\n")
	b.WriteString("- Practice what you've learned with real projects\n")
	fmt.Fprintf(&b, "- Explore advanced topics in %s\n", p.LearningGoal)
	b.WriteString("- Share your knowledge with others\n")
	b.WriteString("- Consider related areas of study\n\n")
	b.WriteString("Keep up the excellent work! Learning is a journey, and you've taken important steps forward.")
	return b.String()
}

// ExportNotes writes the revision notes for the current session into dir
// and returns the file path.
func (o *Orchestrator) ExportNotes(ctx context.Context, dir string, f progress.ExportFormat) (string, error) {
	p := o.profiles.Load(ctx)
	if p == nil {
		return "", o.fail("Please complete onboarding first.", ErrNoProfile)
	}
	rn, ok := o.tracker.RevisionNotes(ctx, p.LearningGoal)
	if !ok {
		return "", o.fail("Start a learning session first.", ErrNoSession)
	}
	path, err := rn.WriteFile(dir, f)
	if err != nil {
		return "", o.fail("Could not save your revision notes.", err)
	}
	o.log.Info("revision notes exported", "path", path, "format", string(f))
	o.clearMessage()
	return path, nil
}
