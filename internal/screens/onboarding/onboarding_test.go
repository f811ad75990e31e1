package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/router"
	"github.com/abhisek/learnflow/internal/screens/screentest"
	"github.com/abhisek/learnflow/internal/session"
)

func TestOnboarding_InvalidNameStays(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	s := New(o, screentest.Screens{})

	s.name.Model.SetValue("A")
	s.setFocus(fieldGoal)
	s.Update(screentest.Key("enter"))

	assert.Nil(t, o.Profile(context.Background()))
	assert.Equal(t, session.SectionOnboarding, o.Section())
	assert.Equal(t, "Name must be at least 2 characters long", s.name.Err)
	assert.Equal(t, fieldName, s.focus)
	assert.Contains(t, s.View(100, 40), "Name must be at least 2 characters long")
}

func TestOnboarding_SubmitCatalogGoal(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	s := New(o, screentest.Screens{})

	s.name.Model.SetValue("Ada")
	s.Update(screentest.Key("enter")) // to level
	s.Update(screentest.Key("down"))  // intermediate
	s.Update(screentest.Key("enter")) // to goal
	_, cmd := s.Update(screentest.Key("enter"))

	msg, ok := screentest.Msg(cmd).(router.ResetScreenMsg)
	require.True(t, ok, "expected a reset to the path screen")
	assert.Equal(t, "path", msg.Screen.Title())

	p := o.Profile(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, profile.Intermediate, p.SkillLevel)
	assert.Equal(t, profile.Catalog[0].Name, p.LearningGoal)
}

func TestOnboarding_CustomGoal(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	s := New(o, screentest.Screens{})

	s.name.Model.SetValue("Grace")
	s.goals.Select(customGoal)
	s.setFocus(fieldGoal)
	s.Update(screentest.Key("enter"))
	require.Equal(t, fieldCustomGoal, s.focus)

	s.Update(screentest.Key("enter"))
	assert.Nil(t, o.Profile(context.Background()))
	assert.Equal(t, "Please select an option", s.custom.Err)

	s.custom.Model.SetValue("Rust for embedded systems")
	_, cmd := s.Update(screentest.Key("enter"))
	_, ok := screentest.Msg(cmd).(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Rust for embedded systems", o.Profile(context.Background()).LearningGoal)
}

func TestOnboarding_PrefillsStoredProfile(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	_, err := o.Onboard(context.Background(), "Linus", "expert", "Kernel hacking")
	require.NoError(t, err)

	s := New(o, screentest.Screens{})
	assert.Equal(t, "Linus", s.name.Value())
	assert.Equal(t, string(profile.Expert), s.levels.Current().Value)
	assert.True(t, s.customSelected())
	assert.Equal(t, "Kernel hacking", s.custom.Value())
}
