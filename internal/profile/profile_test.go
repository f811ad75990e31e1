package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/kvstore"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	p, err := New("  Ada ", "Intermediate", "machine learning", now)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, Intermediate, p.SkillLevel)
	assert.Equal(t, "Machine Learning", p.LearningGoal, "catalog goals are canonicalized")
	assert.Equal(t, now, p.CreatedAt)
}

func TestNew_CustomGoal(t *testing.T) {
	p, err := New("Ada", "beginner", "Rust for embedded", now)
	require.NoError(t, err)
	assert.Equal(t, "Rust for embedded", p.LearningGoal)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name, user, level, goal string
		fields                  map[string]string
	}{
		{
			name: "all empty", user: " ", level: "", goal: "",
			fields: map[string]string{
				FieldName:  "This field is required",
				FieldLevel: "Please select an option",
				FieldGoal:  "Please select an option",
			},
		},
		{
			name: "short name", user: "A", level: "expert", goal: "Data Science",
			fields: map[string]string{FieldName: "Name must be at least 2 characters long"},
		},
		{
			name: "unknown level", user: "Ada", level: "wizard", goal: "Data Science",
			fields: map[string]string{FieldLevel: "Please select an option"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.user, tt.level, tt.goal, now)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Len(t, ve.Errors, len(tt.fields))
			for field, msg := range tt.fields {
				assert.Equal(t, msg, ve.Message(field))
			}
		})
	}
}

func TestSearchQuery(t *testing.T) {
	assert.Equal(t, "python programming tutorial beginner", SearchQuery("Python Programming", Beginner))
	assert.Equal(t, "machine learning ml artificial intelligence tutorial intermediate advanced",
		SearchQuery("Machine Learning", Intermediate))
	assert.Equal(t, "Rust tutorial beginner tutorial basics", SearchQuery(" Rust ", Beginner))
}

func TestLookupGoal(t *testing.T) {
	g, ok := LookupGoal("data science")
	require.True(t, ok)
	assert.Equal(t, []string{"Python Programming"}, g.Prerequisites)

	_, ok = LookupGoal("Basket weaving")
	assert.False(t, ok)
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kvstore.NewMemory())
	assert.Nil(t, repo.Load(ctx))

	p, err := New("Ada", "expert", "Web Development", now)
	require.NoError(t, err)
	require.True(t, repo.Save(ctx, p))

	got := repo.Load(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, Expert, got.SkillLevel)
	assert.True(t, got.CreatedAt.Equal(now))

	require.True(t, repo.Clear(ctx))
	assert.Nil(t, repo.Load(ctx))
}

func TestSkillLevel(t *testing.T) {
	l, ok := ParseSkillLevel(" EXPERT ")
	require.True(t, ok)
	assert.Equal(t, Expert, l)
	assert.Equal(t, 3, l.Rank())
	assert.Equal(t, "advanced expert professional", l.SearchModifier())
}
