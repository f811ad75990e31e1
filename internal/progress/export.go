package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportFormat selects the revision notes file format.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatText ExportFormat = "txt"
)

// ParseExportFormat accepts "json", "txt" or "text".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or txt)", s)
}

// ExportedNote is a note together with the video it was taken on.
type ExportedNote struct {
	Note
	VideoID    string `json:"videoId"`
	VideoTitle string `json:"videoTitle"`
}

// RevisionNotes is a portable snapshot of what the learner covered.
type RevisionNotes struct {
	LearningGoal    string          `json:"learningGoal"`
	CompletedVideos []VideoProgress `json:"completedVideos"`
	Statistics      Statistics      `json:"statistics"`
	Achievements    []Badge         `json:"achievements"`
	Notes           []ExportedNote  `json:"notes"`
	ExportDate      time.Time       `json:"exportDate"`
}

// RevisionNotes collects the current session into a RevisionNotes
// document. ok is false when no session exists.
func (t *Tracker) RevisionNotes(ctx context.Context, goal string) (*RevisionNotes, bool) {
	s := t.Current(ctx)
	if s == nil {
		return nil, false
	}
	stats, _ := t.Statistics(ctx)

	rn := &RevisionNotes{
		LearningGoal:    goal,
		CompletedVideos: []VideoProgress{},
		Statistics:      stats,
		Achievements:    Badges(stats),
		Notes:           []ExportedNote{},
		ExportDate:      t.now().UTC(),
	}
	if rn.Achievements == nil {
		rn.Achievements = []Badge{}
	}
	for _, v := range s.Videos {
		if v.Completed {
			rn.CompletedVideos = append(rn.CompletedVideos, v)
		}
		for _, n := range v.Notes {
			rn.Notes = append(rn.Notes, ExportedNote{Note: n, VideoID: v.VideoID, VideoTitle: v.Title})
		}
	}
	return rn, true
}

// FileName returns the default file name, e.g. "learning-notes-2026-03-01.json".
func (rn *RevisionNotes) FileName(f ExportFormat) string {
	return fmt.Sprintf("learning-notes-%s.%s", rn.ExportDate.Format(time.DateOnly), f)
}

// Write renders rn to w in format f.
func (rn *RevisionNotes) Write(w io.Writer, f ExportFormat) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rn)
	case FormatText:
		_, err := io.WriteString(w, rn.text())
		return err
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteFile writes rn into dir under its default file name and returns
// the path written.
func (rn *RevisionNotes) WriteFile(dir string, f ExportFormat) (string, error) {
	path := filepath.Join(dir, rn.FileName(f))
	var b strings.Builder
	if err := rn.Write(&b, f); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write revision notes: %w", err)
	}
	return path, nil
}

func (rn *RevisionNotes) text() string {
	var b strings.Builder
	b.WriteString("LearnFlow Revision Notes\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Goal:     %s\n", rn.LearningGoal)
	fmt.Fprintf(&b, "Exported: %s\n\n", rn.ExportDate.Format("2006-01-02 15:04 MST"))

	st := rn.Statistics
	b.WriteString("Statistics\n")
	fmt.Fprintf(&b, "  Progress:       %d%%\n", st.OverallProgress)
	fmt.Fprintf(&b, "  Videos:         %d/%d\n", st.CompletedVideos, st.TotalVideos)
	fmt.Fprintf(&b, "  Quizzes taken:  %d\n", st.CompletedQuizzes)
	fmt.Fprintf(&b, "  Average score:  %d%%\n", st.AverageQuizScore)
	fmt.Fprintf(&b, "  Time spent:     %s\n", st.TimeSpent.Formatted)

	if len(rn.Achievements) > 0 {
		b.WriteString("\nAchievements\n")
		for _, a := range rn.Achievements {
			fmt.Fprintf(&b, "  * %s: %s\n", a.Name, a.Description)
		}
	}

	b.WriteString("\nCompleted videos\n")
	if len(rn.CompletedVideos) == 0 {
		b.WriteString("  (none yet)\n")
	}
	for i, v := range rn.CompletedVideos {
		fmt.Fprintf(&b, "  %d. %s", i+1, v.Title)
		if score, ok := v.QuizScore(); ok {
			fmt.Fprintf(&b, " (quiz %d%%)", score)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nNotes\n")
	if len(rn.Notes) == 0 {
		b.WriteString("  (no notes)\n")
	}
	lastVideo := ""
	for _, n := range rn.Notes {
		if n.VideoID != lastVideo {
			fmt.Fprintf(&b, "  %s\n", n.VideoTitle)
			lastVideo = n.VideoID
		}
		fmt.Fprintf(&b, "    - [%s] %s\n", n.Timestamp.UTC().Format("2006-01-02 15:04"), n.Text)
	}
	return b.String()
}
