package state

import (
	"strings"

	"github.com/cristianoliveira/maprepl/internal/tui/render"
)

var (
	replHelp   = []string{"enter: run", "pgup/pgdown: scroll", "ctrl+c: quit"}
	mapHelp    = []string{"enter: submit", "tab: focus map", "esc: close popup", "click: query area", "ctrl+c: quit"}
	canvasHelp = []string{"arrows/hjkl: pan", "+/-: zoom", "enter: query center", "tab: focus input", "esc: close popup"}
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder
	if m.view == ViewREPL {
		s.WriteString(render.Header("maprepl · REPL", "Show Map", m.width))
		s.WriteString("\n")
		s.WriteString(m.history.View())
		s.WriteString("\n")
		s.WriteString(m.replInput.View())
		s.WriteString("\n")
		s.WriteString(render.Footer(replHelp))
		return s.String()
	}

	s.WriteString(render.Header("maprepl · Map", "Show REPL", m.width))
	s.WriteString("\n")
	if msg, ok := m.alerts.Current(); ok {
		s.WriteString(render.Modal(render.AlertBox(msg, m.width-4), m.width, m.bodyHeight()))
	} else {
		s.WriteString(render.MapCanvas(render.MapFrame{State: m.mapState, Width: m.width, Height: m.bodyHeight()}))
	}
	s.WriteString("\n")
	s.WriteString(m.mapInput.View())
	s.WriteString("\n")
	help := mapHelp
	if m.canvasFocus {
		help = canvasHelp
	}
	s.WriteString(render.Footer(help))
	return s.String()
}
