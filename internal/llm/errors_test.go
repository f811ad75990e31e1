package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestReason(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"rate limit", &ErrRateLimit{Err: base}, "rate_limited"},
		{"auth", &ErrAuth{Err: base}, "auth"},
		{"truncated", &ErrMaxTokensExceeded{}, "truncated"},
		{"invalid", fmt.Errorf("curate: %w", &ErrInvalidResponse{Err: base}), "invalid_response"},
		{"unavailable", &ErrProviderUnavailable{}, "unavailable"},
		{"other", base, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrRateLimit_Message(t *testing.T) {
	err := &ErrRateLimit{Err: errors.New("slow down")}
	if got := err.Error(); got != "rate limited: slow down" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("expected Unwrap to expose the cause")
	}
}
