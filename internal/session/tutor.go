package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/learnflow/internal/llm"
)

// maxChatHistory is the number of earlier messages sent with a question.
const maxChatHistory = 6

// AskTutor answers a learner question about the open video. When the LLM
// is unavailable a canned, keyword-matched reply is returned instead, so
// the call never fails.
func (o *Orchestrator) AskTutor(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return ""
	}

	title := o.currentVideoTitle(ctx)
	if o.provider == nil {
		return tutorFallback(question, title)
	}

	history := o.chat
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	messages := append(append([]llm.Message{}, history...), llm.Message{Role: llm.RoleUser, Content: question})

	req := llm.Request{
		System:      o.tutorSystemPrompt(ctx, title),
		Messages:    messages,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	resp, err := o.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTutor), req)
	if err != nil {
		o.log.Warn("tutor fell back to canned reply", "reason", llm.Reason(err), "error", err)
		return tutorFallback(question, title)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return tutorFallback(question, title)
	}
	o.chat = append(o.chat,
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: answer},
	)
	return answer
}

func (o *Orchestrator) currentVideoTitle(ctx context.Context) string {
	if o.videoID == "" {
		return ""
	}
	if s := o.tracker.Current(ctx); s != nil {
		if v := s.Video(o.videoID); v != nil {
			return v.Title
		}
	}
	return ""
}

func (o *Orchestrator) tutorSystemPrompt(ctx context.Context, title string) string {
	if title == "" {
		return "You are a helpful AI tutor. Answer the student's question clearly and helpfully."
	}
	level, goal := "beginner", "General Learning"
	if p := o.profiles.Load(ctx); p != nil {
		level, goal = string(p.SkillLevel), p.LearningGoal
	}
	return fmt.Sprintf(`You are an AI tutor helping a %s student learn %s.

The student is currently watching: %q

Provide helpful, clear explanations that match their skill level. Use examples when appropriate and be encouraging.`, level, goal, title)
}

func tutorFallback(question, title string) string {
	if title == "" {
		title = "the current lesson"
	}
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "explain") || strings.Contains(q, "what is"):
		return fmt.Sprintf(`I'd be happy to help explain that! However, I'm currently having trouble connecting to the AI service.

For now, I recommend:
1. Reviewing the current video: %q
2. Taking notes on key concepts
3. Trying the question again in a moment`, title)
	case strings.Contains(q, "help") || strings.Contains(q, "don't understand"):
		return `I understand you need help! While I'm having trouble connecting to the AI service right now, here are some suggestions:

1. Pause the video and rewatch the relevant section
2. Check if there are any provided resources or documentation
3. Break down the concept into smaller parts
4. Try asking a more specific question`
	case strings.Contains(q, "summary") || strings.Contains(q, "recap"):
		return fmt.Sprintf(`I'd love to provide a summary! Unfortunately, I'm currently experiencing connection issues with the AI service.

In the meantime, try:
1. Reviewing the key points from %q
2. Writing down the main concepts covered
3. Creating your own summary notes`, title)
	default:
		return `Thank you for your question! I'm currently having trouble connecting to the AI service, but I'll be back online shortly.

While you wait:
- Continue with the current lesson
- Take notes on anything unclear
- Try asking again in a few moments`
	}
}
