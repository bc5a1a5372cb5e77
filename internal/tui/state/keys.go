package state

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}
	if m.view == ViewMap && m.alerts.Blocking() {
		switch msg.String() {
		case "enter", "esc":
			m.alerts.Dismiss()
		}
		return m, nil
	}
	if msg.String() == "ctrl+t" {
		m.toggleView()
		return m, nil
	}
	if m.view == ViewREPL {
		return m.handleREPLKey(msg)
	}
	return m.handleMapKey(msg)
}

func (m *Model) toggleView() {
	if m.view == ViewMap {
		m.view = ViewREPL
	} else {
		m.view = ViewMap
	}
	m.focusActiveInput()
}

func (m *Model) handleREPLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := m.replInput.Value()
		m.replInput.Reset()
		return m, m.dispatch(line)
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	return m.updateInput(msg)
}

func (m *Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mapState = m.mapState.ClosePopup()
		return m, nil
	case "tab":
		m.canvasFocus = !m.canvasFocus
		m.focusActiveInput()
		return m, nil
	}
	if m.canvasFocus {
		return m.handleCanvasKey(msg)
	}
	if msg.String() == "enter" {
		line := m.mapInput.Value()
		m.mapInput.Reset()
		return m, m.submitMap(line)
	}
	return m.updateInput(msg)
}

func (m *Model) handleCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.projection().PanStep()
	switch msg.String() {
	case "left", "h":
		m.mapState = m.mapState.Pan(-step, 0)
	case "right", "l":
		m.mapState = m.mapState.Pan(step, 0)
	case "up", "k":
		m.mapState = m.mapState.Pan(0, step)
	case "down", "j":
		m.mapState = m.mapState.Pan(0, -step)
	case "+", "=":
		m.mapState = m.mapState.ZoomBy(1)
	case "-", "_":
		m.mapState = m.mapState.ZoomBy(-1)
	case "enter":
		p := m.projection()
		return m, m.click(p.CellCenter(p.Cols/2, p.Rows/2))
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewMap || m.alerts.Blocking() {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.mapState = m.mapState.ZoomBy(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.mapState = m.mapState.ZoomBy(-1)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		row := msg.Y - headerLines
		if row < 0 || row >= m.bodyHeight() || msg.X < 0 || msg.X >= m.width {
			return m, nil
		}
		return m, m.click(m.projection().CellCenter(msg.X, row))
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ViewREPL {
		m.replInput, cmd = m.replInput.Update(msg)
		return m, cmd
	}
	if !m.canvasFocus {
		m.mapInput, cmd = m.mapInput.Update(msg)
	}
	return m, cmd
}
