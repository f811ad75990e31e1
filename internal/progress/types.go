package progress

import (
	"fmt"
	"time"
)

// Video is the reduced descriptor a session is built from.
type Video struct {
	ID    string
	Title string
}

// Note is a timestamped free-text annotation on a video.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// VideoProgress tracks one video within a learning session.
type VideoProgress struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	ViewSeconds   int    `json:"viewTime"`
	QuizCompleted bool   `json:"quizCompleted"`
	Score         int    `json:"quizScore"`
	Notes         []Note `json:"notes"`
}

// ViewTime returns the recorded dwell time. ok is false until the video
// has been completed.
func (v VideoProgress) ViewTime() (seconds int, ok bool) {
	if !v.Completed {
		return 0, false
	}
	return v.ViewSeconds, true
}

// QuizScore returns the recorded quiz score. ok is false until a quiz for
// the video has been submitted.
func (v VideoProgress) QuizScore() (score int, ok bool) {
	if !v.QuizCompleted {
		return 0, false
	}
	return v.Score, true
}

// LearningSession is the persisted record of one curated video sequence.
type LearningSession struct {
	SessionID       string          `json:"sessionId"`
	StartTime       time.Time       `json:"startTime"`
	Videos          []VideoProgress `json:"videos"`
	OverallProgress int             `json:"overallProgress"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// CompletedCount returns how many videos are completed.
func (s *LearningSession) CompletedCount() int {
	n := 0
	for _, v := range s.Videos {
		if v.Completed {
			n++
		}
	}
	return n
}

// Video returns the progress record for id, or nil.
func (s *LearningSession) Video(id string) *VideoProgress {
	for i := range s.Videos {
		if s.Videos[i].VideoID == id {
			return &s.Videos[i]
		}
	}
	return nil
}

// recompute derives OverallProgress from the completed count.
func (s *LearningSession) recompute() {
	s.OverallProgress = percent(s.CompletedCount(), len(s.Videos))
}

// TimeSpent is elapsed session time split for display.
type TimeSpent struct {
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Formatted string `json:"formatted"`
}

func newTimeSpent(d time.Duration) TimeSpent {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return TimeSpent{Hours: h, Minutes: m, Formatted: fmt.Sprintf("%dh %dm", h, m)}
}

// Statistics are derived from a LearningSession on demand.
type Statistics struct {
	TotalVideos      int       `json:"totalVideos"`
	CompletedVideos  int       `json:"completedVideos"`
	CompletedQuizzes int       `json:"completedQuizzes"`
	AverageQuizScore int       `json:"averageQuizScore"`
	OverallProgress  int       `json:"overallProgress"`
	TimeSpent        TimeSpent `json:"timeSpent"`
	TotalViewSeconds int       `json:"totalViewSeconds"`
}
