package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. The chosen option stays
// marked so learners can move between questions and back.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int

	// Review mode highlights Correct and the chosen option.
	Review  bool
	Correct string
}

// NewMultiChoice creates a selector with the option matching chosen
// pre-selected; chosen may be empty.
func NewMultiChoice(options []string, chosen string) MultiChoice {
	m := MultiChoice{Options: options, Chosen: -1}
	for i, opt := range options {
		if opt == chosen && chosen != "" {
			m.Chosen = i
			m.Cursor = i
		}
	}
	return m
}

// Update handles keyboard navigation and selection. A digit or letter
// picks an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Review {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space", " ":
		m.Chosen = m.Cursor
		return m, nil
	}

	if idx := choiceIndex(key); idx >= 0 && idx < len(m.Options) {
		m.Cursor = idx
		m.Chosen = idx
	}
	return m, nil
}

func choiceIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1')
	case c >= 'a' && c <= 'f':
		return int(c - 'a')
	}
	return -1
}

// Value returns the chosen option text, or "".
func (m MultiChoice) Value() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}

		prefix := "  "
		if i == m.Cursor && !m.Review {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		var style lipgloss.Style
		switch {
		case m.Review && opt == m.Correct:
			style = theme.Correct
		case m.Review && i == m.Chosen:
			style = theme.Incorrect
		case m.Review:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
