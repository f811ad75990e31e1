package progress

// Badge is an achievement earned from session statistics.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

const (
	videoMasterVideos      = 5
	quizChampionScore      = 80
	knowledgeSeekerQuizzes = 3
	dedicatedLearnerHours  = 2
)

// Badges returns the achievements s qualifies for, in display order.
func Badges(s Statistics) []Badge {
	var out []Badge
	if s.CompletedVideos >= videoMasterVideos {
		out = append(out, Badge{Name: "Video Master", Description: "Completed 5 or more videos"})
	}
	if s.AverageQuizScore >= quizChampionScore {
		out = append(out, Badge{Name: "Quiz Champion", Description: "Averaged 80% or better on quizzes"})
	}
	if s.CompletedQuizzes >= knowledgeSeekerQuizzes {
		out = append(out, Badge{Name: "Knowledge Seeker", Description: "Took 3 or more quizzes"})
	}
	if s.TimeSpent.Hours >= dedicatedLearnerHours {
		out = append(out, Badge{Name: "Dedicated Learner", Description: "Spent 2 hours or more learning"})
	}
	return out
}
