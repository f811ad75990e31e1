package progress

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadges(t *testing.T) {
	names := func(bs []Badge) []string {
		var out []string
		for _, b := range bs {
			out = append(out, b.Name)
		}
		return out
	}

	tests := []struct {
		name  string
		stats Statistics
		want  []string
	}{
		{"nothing yet", Statistics{}, nil},
		{"video master", Statistics{CompletedVideos: 5}, []string{"Video Master"}},
		{"four videos is not enough", Statistics{CompletedVideos: 4}, nil},
		{"quiz champion", Statistics{CompletedQuizzes: 1, AverageQuizScore: 80}, []string{"Quiz Champion"}},
		{"below champion", Statistics{CompletedQuizzes: 1, AverageQuizScore: 79}, nil},
		{"knowledge seeker", Statistics{CompletedQuizzes: 3, AverageQuizScore: 50}, []string{"Knowledge Seeker"}},
		{"dedicated learner", Statistics{TimeSpent: TimeSpent{Hours: 2}}, []string{"Dedicated Learner"}},
		{
			"all four in order",
			Statistics{CompletedVideos: 6, CompletedQuizzes: 6, AverageQuizScore: 92, TimeSpent: TimeSpent{Hours: 3}},
			[]string{"Video Master", "Quiz Champion", "Knowledge Seeker", "Dedicated Learner"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Badges(tt.stats)))
		})
	}
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseExportFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func seedNotes(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	tr, clock := newTestTracker(t)
	ctx := context.Background()
	tr.Initialize(ctx, videos("a", "b", "c"))
	clock.Advance(3 * time.Minute)
	require.True(t, tr.AddNote(ctx, "a", "variables hold values"))
	require.True(t, tr.MarkVideoCompleted(ctx, "a", 180))
	require.True(t, tr.UpdateQuizScore(ctx, "a", 90))
	require.True(t, tr.AddNote(ctx, "b", "functions take arguments"))
	clock.Advance(2 * time.Hour)
	return tr, clock
}

func TestRevisionNotes(t *testing.T) {
	ctx := context.Background()

	empty, _ := newTestTracker(t)
	_, ok := empty.RevisionNotes(ctx, "Python Programming")
	assert.False(t, ok)

	tr, clock := seedNotes(t)
	rn, ok := tr.RevisionNotes(ctx, "Python Programming")
	require.True(t, ok)
	assert.Equal(t, "Python Programming", rn.LearningGoal)
	require.Len(t, rn.CompletedVideos, 1)
	assert.Equal(t, "a", rn.CompletedVideos[0].VideoID)
	assert.Equal(t, 1, rn.Statistics.CompletedVideos)
	assert.True(t, rn.ExportDate.Equal(clock.t))

	require.Len(t, rn.Notes, 2)
	assert.Equal(t, "a", rn.Notes[0].VideoID)
	assert.Equal(t, "Video a", rn.Notes[0].VideoTitle)
	assert.Equal(t, "functions take arguments", rn.Notes[1].Text)

	var badges []string
	for _, b := range rn.Achievements {
		badges = append(badges, b.Name)
	}
	assert.Equal(t, []string{"Quiz Champion", "Dedicated Learner"}, badges)
	assert.Equal(t, "learning-notes-2026-03-01.json", rn.FileName(FormatJSON))
}

func TestRevisionNotes_WriteJSON(t *testing.T) {
	tr, _ := seedNotes(t)
	rn, ok := tr.RevisionNotes(context.Background(), "Python Programming")
	require.True(t, ok)

	var b strings.Builder
	require.NoError(t, rn.Write(&b, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &got))
	assert.Equal(t, "Python Programming", got["learningGoal"])
	assert.Contains(t, got, "exportDate")
	assert.Contains(t, got, "statistics")

	notes, ok := got["notes"].([]any)
	require.True(t, ok)
	require.Len(t, notes, 2)
	first := notes[0].(map[string]any)
	assert.Equal(t, "variables hold values", first["text"])
	assert.Equal(t, "a", first["videoId"])
}

func TestRevisionNotes_WriteFileText(t *testing.T) {
	tr, _ := seedNotes(t)
	rn, ok := tr.RevisionNotes(context.Background(), "Python Programming")
	require.True(t, ok)

	dir := t.TempDir()
	path, err := rn.WriteFile(dir, FormatText)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "learning-notes-2026-03-01.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Goal:     Python Programming")
	assert.Contains(t, text, "Videos:         1/3")
	assert.Contains(t, text, "1. Video a (quiz 90%)")
	assert.Contains(t, text, "* Quiz Champion")
	assert.Contains(t, text, "    - [2026-03-01 09:03] variables hold values")
	assert.Contains(t, text, "  Video b\n")
}

func TestRevisionNotes_UnknownFormat(t *testing.T) {
	tr, _ := seedNotes(t)
	rn, _ := tr.RevisionNotes(context.Background(), "Go")
	assert.Error(t, rn.Write(&strings.Builder{}, ExportFormat("pdf")))
}
