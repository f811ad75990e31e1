package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/learnflow/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: []byte(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, "groq", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeCuration)
	if _, err := p.Generate(ctx, Request{
		System:   "pick videos",
		Messages: []Message{{Role: RoleUser, Content: "python basics"}},
		Schema:   testSchema(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "groq" || e.Model != "mock" || e.Purpose != PurposeCuration {
		t.Fatalf("unexpected event identity: %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Fatalf("unexpected event metrics: %+v", e)
	}
	for _, want := range []string{"[system]", "pick videos", "[user]", "python basics", "[schema: test-question]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Fatalf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailureAndSurvivesRepoErrors(t *testing.T) {
	repo := &recordingRepo{err: errors.New("db locked")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "groq", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("hi")), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
