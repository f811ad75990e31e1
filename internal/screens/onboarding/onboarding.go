// Package onboarding collects the learner's name, skill level and goal.
package onboarding

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/screen"
	"github.com/abhisek/learnflow/internal/screens/nav"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/ui/components"
	"github.com/abhisek/learnflow/internal/ui/layout"
	"github.com/abhisek/learnflow/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldLevel
	fieldGoal
	fieldCustomGoal
)

// customGoal is the goal menu value that reveals the free-form input.
const customGoal = "__custom__"

var levelDetails = map[profile.SkillLevel]string{
	profile.Beginner:     "New to the topic",
	profile.Intermediate: "Know the basics, want depth",
	profile.Expert:       "Looking for advanced material",
}

// Screen is the onboarding form.
type Screen struct {
	orch    *session.Orchestrator
	screens nav.Screens

	name   components.TextInput
	levels components.Menu
	goals  components.Menu
	custom components.TextInput
	focus  field

	levelErr string
	goalErr  string
	message  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the onboarding screen, prefilled from any stored profile.
func New(orch *session.Orchestrator, screens nav.Screens) *Screen {
	title := cases.Title(language.English)

	levelItems := make([]components.MenuItem, len(profile.SkillLevels))
	for i, l := range profile.SkillLevels {
		levelItems[i] = components.MenuItem{Label: title.String(string(l)), Detail: levelDetails[l], Value: string(l)}
	}

	goalItems := make([]components.MenuItem, 0, len(profile.Catalog)+1)
	for _, g := range profile.Catalog {
		goalItems = append(goalItems, components.MenuItem{Label: g.Name, Value: g.Name})
	}
	goalItems = append(goalItems, components.MenuItem{Label: "Something else…", Value: customGoal})

	s := &Screen{
		orch:    orch,
		screens: screens,
		name:    components.NewTextInput("Your name", "Ada", 60),
		levels:  components.NewMenu(levelItems),
		goals:   components.NewMenu(goalItems),
		custom:  components.NewTextInput("Your goal", "e.g. Rust for embedded systems", 120),
	}
	s.custom.Blur()

	if p := orch.Profile(context.Background()); p != nil {
		s.name.Model.SetValue(p.Name)
		s.levels.Select(string(p.SkillLevel))
		if _, ok := profile.LookupGoal(p.LearningGoal); ok {
			s.goals.Select(p.LearningGoal)
		} else {
			s.goals.Select(customGoal)
			s.custom.Model.SetValue(p.LearningGoal)
		}
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *Screen) Title() string {
	return "Welcome"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *Screen) customSelected() bool {
	item := s.goals.Current()
	return item != nil && item.Value == customGoal
}

func (s *Screen) lastField() field {
	if s.customSelected() {
		return fieldCustomGoal
	}
	return fieldGoal
}

func (s *Screen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.custom.Blur()
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldCustomGoal:
		return s.custom.Focus()
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.forward(msg)
	}

	switch kmsg.String() {
	case "tab":
		next := s.focus + 1
		if next > s.lastField() {
			next = fieldName
		}
		return s, s.setFocus(next)
	case "shift+tab":
		prev := s.focus - 1
		if prev < fieldName {
			prev = s.lastField()
		}
		return s, s.setFocus(prev)
	case "enter":
		if s.focus < s.lastField() {
			return s, s.setFocus(s.focus + 1)
		}
		return s.submit()
	}

	return s, s.forward(msg)
}

func (s *Screen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldLevel:
		s.levels, cmd = s.levels.Update(msg)
	case fieldGoal:
		s.goals, cmd = s.goals.Update(msg)
	case fieldCustomGoal:
		s.custom, cmd = s.custom.Update(msg)
	}
	return cmd
}

func (s *Screen) goalValue() string {
	if s.customSelected() {
		return s.custom.Value()
	}
	if item := s.goals.Current(); item != nil {
		return item.Value
	}
	return ""
}

func (s *Screen) levelValue() string {
	if item := s.levels.Current(); item != nil {
		return item.Value
	}
	return ""
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	_, err := s.orch.Onboard(context.Background(), s.name.Value(), s.levelValue(), s.goalValue())
	if err != nil {
		var ve *profile.ValidationError
		if !errors.As(err, &ve) {
			s.message = err.Error()
			return s, nil
		}
		s.name.Err = ve.Message(profile.FieldName)
		s.levelErr = ve.Message(profile.FieldLevel)
		s.goalErr = ve.Message(profile.FieldGoal)
		s.custom.Err = ""
		if s.customSelected() {
			s.custom.Err, s.goalErr = s.goalErr, ""
		}
		s.message = s.orch.Message()

		switch {
		case s.name.Err != "":
			return s, s.setFocus(fieldName)
		case s.levelErr != "":
			return s, s.setFocus(fieldLevel)
		}
		return s, s.setFocus(s.lastField())
	}
	return s, nav.Reset(s.screens.Path())
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render("Tell us a little about yourself and we'll build a video learning path for you."))
	b.WriteString("\n\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")

	b.WriteString(sectionLabel("Skill level", s.focus == fieldLevel))
	b.WriteString("\n")
	b.WriteString(s.levels.View(s.focus == fieldLevel))
	if s.levelErr != "" {
		b.WriteString(theme.ErrorText.Render(s.levelErr) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionLabel("Learning goal", s.focus == fieldGoal))
	b.WriteString("\n")
	b.WriteString(s.goals.View(s.focus == fieldGoal))
	if s.goalErr != "" {
		b.WriteString(theme.ErrorText.Render(s.goalErr) + "\n")
	}
	if s.customSelected() {
		b.WriteString("\n")
		b.WriteString(s.custom.View())
		b.WriteString("\n")
	}

	if s.message != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.message))
	}

	return components.Center(components.Panel("Get started", b.String(), cw), width, height)
}

func sectionLabel(label string, focused bool) string {
	if focused {
		return theme.Selected.Render(label)
	}
	return theme.Unselected.Render(label)
}
