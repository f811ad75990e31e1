package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnflow/internal/router"
	"github.com/abhisek/learnflow/internal/screens/screentest"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

func TestDashboard_OpenVideo(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	assert.Contains(t, d.View(100, 40), "Python variables explained")

	d.Update(screentest.Key("down"))
	_, cmd := d.Update(screentest.Key("enter"))

	msg, ok := screentest.Msg(cmd).(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "video", msg.Screen.Title())
	assert.Equal(t, session.SectionVideo, o.Section())
	assert.Equal(t, "v2", o.CurrentVideoID())
}

func TestDashboard_ContinueOpensNextVideo(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	_, cmd := d.Update(screentest.Key("c"))
	_, ok := screentest.Msg(cmd).(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "v1", o.CurrentVideoID())
}

func TestDashboard_SummaryLockedUntilComplete(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	_, cmd := d.Update(screentest.Key("s"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, d.message)
}

func TestDashboard_NewPath(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	_, cmd := d.Update(screentest.Key("n"))
	msg, ok := screentest.Msg(cmd).(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "path", msg.Screen.Title())
	assert.Nil(t, o.Tracker().Current(context.Background()))
	assert.NotNil(t, o.Profile(context.Background()))
}

func TestDashboard_StartOverNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	d.Update(screentest.Key("x"))
	_, cmd := d.Update(screentest.Key("n"))
	assert.Nil(t, cmd)
	assert.NotNil(t, o.Profile(ctx))

	d.Update(screentest.Key("x"))
	_, cmd = d.Update(screentest.Key("y"))
	msg, ok := screentest.Msg(cmd).(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "onboarding", msg.Screen.Title())
	assert.Nil(t, o.Profile(ctx))
}

func TestDashboard_ThemeToggle(t *testing.T) {
	o, _ := screentest.NewOrchestrator(t, nil)
	screentest.WithPath(t, o)
	d := New(o, screentest.Screens{})

	assert.Equal(t, theme.Dark, d.theme)
	d.Update(screentest.Key("t"))
	assert.Equal(t, theme.Light, o.Theme(context.Background()))
	d.Update(screentest.Key("t"))
	assert.Equal(t, theme.Dark, o.Theme(context.Background()))
}
