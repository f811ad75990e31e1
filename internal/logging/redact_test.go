package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]any{
		"provider", "groq",
		"api_key", "gsk-123",
		"AuthToken", "abc",
		"nested", map[string]any{"password": "x", "model": "llama"},
	})

	assert.Equal(t, "groq", got[1])
	assert.Equal(t, redacted, got[3])
	assert.Equal(t, redacted, got[5])
	nested := got[7].(map[string]any)
	assert.Equal(t, redacted, nested["password"])
	assert.Equal(t, "llama", nested["model"])
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"video", "abc", "dangling"})
	assert.Equal(t, []any{"video", "abc", "dangling"}, got)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("quiet", "k", "v")
	l.With("a", 1).Named("x").Warn("still quiet")
}
