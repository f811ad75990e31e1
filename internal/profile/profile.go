// Package profile models the learner and validates onboarding input.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/learnflow/internal/kvstore"
)

// SkillLevel is the learner's self-reported level.
type SkillLevel string

const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Expert       SkillLevel = "expert"
)

// SkillLevels lists the levels in ascending order.
var SkillLevels = []SkillLevel{Beginner, Intermediate, Expert}

// ParseSkillLevel accepts a level name in any case.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	l := SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case Beginner, Intermediate, Expert:
		return l, true
	}
	return "", false
}

// SearchModifier returns the words appended to video searches for l.
func (l SkillLevel) SearchModifier() string {
	switch l {
	case Intermediate:
		return "intermediate advanced"
	case Expert:
		return "advanced expert professional"
	default:
		return "beginner tutorial basics"
	}
}

// Rank orders levels from 1 (beginner) to 3 (expert).
func (l SkillLevel) Rank() int {
	switch l {
	case Intermediate:
		return 2
	case Expert:
		return 3
	default:
		return 1
	}
}

// UserProfile is the single learner on this device.
type UserProfile struct {
	Name         string     `json:"name"`
	SkillLevel   SkillLevel `json:"skillLevel"`
	LearningGoal string     `json:"learningGoal"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FieldError describes one invalid onboarding field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every invalid field of an onboarding attempt.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Message returns the error for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Onboarding field names.
const (
	FieldName  = "name"
	FieldLevel = "skillLevel"
	FieldGoal  = "learningGoal"
)

// New validates onboarding input and builds a profile. A *ValidationError
// is returned when any field is invalid.
func New(name, level, goal string, now time.Time) (*UserProfile, error) {
	var errs []FieldError

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs = append(errs, FieldError{FieldName, "This field is required"})
	case len([]rune(name)) < 2:
		errs = append(errs, FieldError{FieldName, "Name must be at least 2 characters long"})
	}

	lvl, ok := ParseSkillLevel(level)
	if !ok {
		errs = append(errs, FieldError{FieldLevel, "Please select an option"})
	}

	goal = strings.TrimSpace(goal)
	if goal == "" {
		errs = append(errs, FieldError{FieldGoal, "Please select an option"})
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	if g, ok := LookupGoal(goal); ok {
		goal = g.Name
	}
	return &UserProfile{Name: name, SkillLevel: lvl, LearningGoal: goal, CreatedAt: now}, nil
}

// Repository persists the profile in the key-value store.
type Repository struct {
	kv *kvstore.Store
}

// NewRepository returns a Repository over kv.
func NewRepository(kv *kvstore.Store) *Repository {
	return &Repository{kv: kv}
}

// Load returns the stored profile, or nil.
func (r *Repository) Load(ctx context.Context) *UserProfile {
	var p UserProfile
	if !r.kv.Get(ctx, kvstore.KeyUserProfile, &p) {
		return nil
	}
	return &p
}

// Save overwrites the stored profile.
func (r *Repository) Save(ctx context.Context, p *UserProfile) bool {
	return r.kv.Set(ctx, kvstore.KeyUserProfile, p)
}

// Clear removes the stored profile.
func (r *Repository) Clear(ctx context.Context) bool {
	return r.kv.Remove(ctx, kvstore.KeyUserProfile)
}
