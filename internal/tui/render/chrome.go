package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/maprepl/internal/errors"
)

// Header renders the title bar with the view toggle hint on the right.
func Header(title, toggle string, width int) string {
	left := titleStyle.Render(title)
	right := dimStyle.Render("ctrl+t: " + toggle)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// Footer renders help entries.
func Footer(help []string) string {
	return dimStyle.Render(strings.Join(help, "  |  "))
}

// AlertBox renders a modal alert with its dismiss hint.
func AlertBox(msg errors.Message, width int) string {
	body := msg.Text + "\n\n" + dimStyle.Render("enter/esc: OK")
	style := alertStyle.BorderForeground(alertColor(msg.Type))
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(lipgloss.NewStyle().Bold(true).Render(msg.Type.String()) + "\n" + body)
}

// Modal centers box in an area of width x height.
func Modal(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
