package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learnflow/internal/curation"
	"github.com/abhisek/learnflow/internal/profile"
)

// Section is the part of the flow the learner is in.
type Section string

const (
	SectionOnboarding Section = "onboarding"
	SectionSearch     Section = "search"
	SectionSelection  Section = "selection"
	SectionDashboard  Section = "dashboard"
	SectionVideo      Section = "video"
	SectionQuiz       Section = "quiz"
	SectionSummary    Section = "summary"
)

// Video is one curated video with the details needed to show and quiz it.
type Video struct {
	curation.SelectedVideo
	Description     string `json:"description"`
	ChannelTitle    string `json:"channelTitle"`
	Thumbnail       string `json:"thumbnail,omitempty"`
	DurationSeconds int    `json:"duration"`
}

// CurrentSession is the curated path persisted under the current-session
// key so a learning session can be reopened.
type CurrentSession struct {
	Goal       string                `json:"goal"`
	SkillLevel profile.SkillLevel    `json:"skillLevel"`
	Query      string                `json:"query"`
	Videos     []Video               `json:"videos"`
	Plan       curation.LearningPlan `json:"learningPlan"`
	Source     curation.Source       `json:"source"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// Video returns the curated video with id, or nil.
func (s *CurrentSession) Video(id string) *Video {
	for i := range s.Videos {
		if s.Videos[i].VideoID == id {
			return &s.Videos[i]
		}
	}
	return nil
}

var (
	ErrNoProfile         = errors.New("no learner profile")
	ErrNoSession         = errors.New("no learning session")
	ErrNoSearcher        = errors.New("video search is not configured")
	ErrNoVideos          = errors.New("no videos found for this goal")
	ErrUnknownVideo      = errors.New("video is not part of the learning session")
	ErrNoActiveVideo     = errors.New("no video is open")
	ErrVideoNotCompleted = errors.New("video must be completed before taking the quiz")
	ErrNoteRejected      = errors.New("note was not saved")
)

// GateError is returned by CompleteVideo before the minimum watch time.
type GateError struct {
	Remaining int
}

func (e *GateError) Error() string {
	return fmt.Sprintf("keep watching: %d seconds remaining before the video can be completed", e.Remaining)
}
