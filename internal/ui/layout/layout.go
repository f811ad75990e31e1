package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnflow/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
	return msg
}

// RenderHeader draws the top bar: the app name on the left, the screen
// title centered and status on the right. The status is truncated first
// when the bar is too narrow.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)

	brand := "  LearnFlow"
	leftGap := max((inner-lipgloss.Width(title))/2-lipgloss.Width(brand), 1)
	room := max(inner-lipgloss.Width(brand)-leftGap-lipgloss.Width(title)-1, 0)
	status = Truncate(status, room)
	rightGap := max(inner-lipgloss.Width(brand)-leftGap-lipgloss.Width(title)-lipgloss.Width(status), 1)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	return frameStyle(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// QuitHint is always shown last in the footer.
var QuitHint = KeyHint{Key: "Ctrl+C", Description: "Quit"}

// RenderFooter draws the key hints followed by QuitHint. Hints that do not
// fit on one line are dropped from the end, QuitHint excepted.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	render := func(h KeyHint) string {
		return keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}

	const sep = "   "
	quit := render(QuitHint)
	budget := width - 6 - lipgloss.Width(quit)

	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for _, h := range hints {
		if h == QuitHint {
			continue
		}
		part := render(h)
		w := lipgloss.Width(part) + len(sep)
		if used+w > budget {
			break
		}
		b.WriteString(part)
		b.WriteString(sep)
		used += w
	}
	b.WriteString(quit)

	return frameStyle(width).Render(b.String())
}

func frameStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// Truncate shortens s to max display cells, adding an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
