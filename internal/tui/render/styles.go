// Package render draws the TUI: the REPL history, the braille map canvas,
// the popup and the modal alert. Functions here are pure string builders.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/maprepl/internal/colors"
	"github.com/cristianoliveira/maprepl/internal/errors"
)

var (
	accentColor = lipgloss.Color(ansiColorNumber(colors.Blue))
	dimColor    = lipgloss.Color("241")
	borderColor = lipgloss.Color("#243141")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	dimStyle     = lipgloss.NewStyle().Foreground(dimColor)
	commandStyle = lipgloss.NewStyle().Bold(true)
	outputStyle  = lipgloss.NewStyle()
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	popupStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	alertStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3)
)

// ansiColorNumber extracts the color number from an ANSI escape such as
// "\033[0;34m".
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}

func alertColor(t errors.MessageType) lipgloss.Color {
	switch t {
	case errors.MessageTypeError:
		return lipgloss.Color(ansiColorNumber(colors.Red))
	case errors.MessageTypeWarning:
		return lipgloss.Color(ansiColorNumber(colors.Yellow))
	case errors.MessageTypeSuccess:
		return lipgloss.Color(ansiColorNumber(colors.Green))
	default:
		return accentColor
	}
}
