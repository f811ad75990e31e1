package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/logging"
	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
	"github.com/abhisek/learnflow/internal/store"
)

// execute runs the root command against an isolated database and config.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{
		"--db", filepath.Join(dir, "learnflow.db"),
		"--config", filepath.Join(dir, "config.toml"),
	}, args...)
	rootCmd.SetArgs(full)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, dir string) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(filepath.Join(dir, "learnflow.db"))
	require.NoError(t, err)
	defer st.Close()

	kv := kvstore.New(ctx, st.KV(), logging.Nop())
	p, err := profile.New("Ada", "beginner", "Python Programming", time.Now())
	require.NoError(t, err)
	require.True(t, profile.NewRepository(kv).Save(ctx, p))

	tracker := progress.NewTracker(kv)
	tracker.Initialize(ctx, []progress.Video{
		{ID: "v1", Title: "Python variables explained"},
		{ID: "v2", Title: "Python functions for beginners"},
	})
	require.True(t, tracker.MarkVideoCompleted(ctx, "v1", 125))
	require.True(t, tracker.UpdateQuizScore(ctx, "v1", 80))
	require.True(t, tracker.AddNote(ctx, "v1", "names point at values"))
}

func TestStats_NoProfile(t *testing.T) {
	out, err := execute(t, t.TempDir(), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No learner profile yet")
}

func TestStats_WithSession(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out, err := execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Python variables explained")
	assert.Contains(t, out, "2m 05s")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "pending")
}

func TestReset_KeepsProfile(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out, err := execute(t, dir, "reset", "--all=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Learning path discarded")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "No learning path started")
}

func TestReset_All(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	_, err := execute(t, dir, "reset", "--all")
	require.NoError(t, err)

	out, err := execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No learner profile yet")
}

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "history", "--video", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No quizzes taken yet")
}

func TestExport_NoProfile(t *testing.T) {
	out, err := execute(t, t.TempDir(), "export", "--format", "json", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "No learner profile yet")
}

func TestExport_JSONToStdout(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out, err := execute(t, dir, "export", "--format", "json", "--output", "-")
	require.NoError(t, err)

	var got struct {
		LearningGoal    string `json:"learningGoal"`
		CompletedVideos []struct {
			VideoID string `json:"videoId"`
		} `json:"completedVideos"`
		Notes []struct {
			Text    string `json:"text"`
			VideoID string `json:"videoId"`
		} `json:"notes"`
		Achievements []struct {
			Name string `json:"name"`
		} `json:"achievements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Python Programming", got.LearningGoal)
	require.Len(t, got.CompletedVideos, 1)
	assert.Equal(t, "v1", got.CompletedVideos[0].VideoID)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "names point at values", got.Notes[0].Text)
	require.Len(t, got.Achievements, 1)
	assert.Equal(t, "Quiz Champion", got.Achievements[0].Name)
}

func TestExport_TextFile(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	outDir := t.TempDir()

	out, err := execute(t, dir, "export", "--format", "txt", "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 notes)")

	matches, err := filepath.Glob(filepath.Join(outDir, "learning-notes-*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "1. Python variables explained (quiz 80%)")
	assert.Contains(t, string(data), "names point at values")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := execute(t, t.TempDir(), "export", "--format", "pdf", "--output", "-")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "config", "init", "--force=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	b, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	_, err = execute(t, dir, "config", "init", "--force=false")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, dir, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a much longer title", 8, "a much …"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max))
	}
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Score"},
		[][]string{{"quiz one", "80%"}, {"short"}},
		[]columnAlignment{alignLeft, alignRight},
		"TOTAL", "80%",
	)
	assert.Contains(t, out, "quiz one")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "╭")

	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "learnflow ")
}
