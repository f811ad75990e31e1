package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/ui/theme"
)

// ContentWidth returns the inner width used for panels in a frame of the
// given width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel renders body inside a rounded card with an optional title line.
func Panel(title, body string, width int) string {
	content := body
	if title != "" {
		content = theme.Title.Render(title) + "\n\n" + body
	}
	return theme.Card.Width(width).Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
