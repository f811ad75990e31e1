package profile

import "strings"

// Goal is a catalog entry for a learning goal.
type Goal struct {
	Name          string
	Keywords      []string
	Prerequisites []string
	Difficulty    SkillLevel
}

// Catalog is the fixed list of suggested goals. Learners may also type
// their own.
var Catalog = []Goal{
	{Name: "Python Programming", Keywords: []string{"python", "programming", "tutorial", "beginner"}, Difficulty: Beginner},
	{Name: "JavaScript Programming", Keywords: []string{"javascript", "js", "programming", "tutorial"}, Difficulty: Beginner},
	{Name: "Web Development", Keywords: []string{"web development", "html", "css", "frontend"}, Difficulty: Beginner},
	{Name: "UI/UX Design", Keywords: []string{"ui ux design", "user interface", "user experience"}, Difficulty: Beginner},
	{Name: "Machine Learning", Keywords: []string{"machine learning", "ml", "artificial intelligence"}, Prerequisites: []string{"Python Programming"}, Difficulty: Intermediate},
	{Name: "Data Science", Keywords: []string{"data science", "data analysis", "statistics"}, Prerequisites: []string{"Python Programming"}, Difficulty: Intermediate},
}

// LookupGoal finds a catalog goal by name, ignoring case.
func LookupGoal(name string) (Goal, bool) {
	name = strings.TrimSpace(name)
	for _, g := range Catalog {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Goal{}, false
}

// SearchQuery builds the video search query for a goal at a level.
// Catalog goals search by their keywords; free-form goals search by the
// goal text itself.
func SearchQuery(goal string, level SkillLevel) string {
	g, ok := LookupGoal(goal)
	if !ok {
		return strings.TrimSpace(goal) + " tutorial " + level.SearchModifier()
	}

	words := append([]string{}, g.Keywords...)
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.Join(words, " ")) {
		seen[w] = true
	}
	query := strings.Join(words, " ")
	if !seen["tutorial"] {
		query += " tutorial"
	}
	if level != Beginner {
		query += " " + level.SearchModifier()
	}
	return query
}
