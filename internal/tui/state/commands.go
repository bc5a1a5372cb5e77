package state

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/maprepl/internal/geo"
)

func (m *Model) loadBase() tea.Cmd {
	if m.controller == nil {
		return nil
	}
	c, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return mapOutcomeMsg{Outcome: c.LoadBase(ctx)}
	}
}

func (m *Model) dispatch(line string) tea.Cmd {
	if m.dispatcher == nil {
		return nil
	}
	f := m.dispatcher.Dispatch(m.ctx, line)
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		entry, err := f.Wait()
		return entryRecordedMsg{Entry: entry, Err: err}
	}
}

func (m *Model) submitMap(line string) tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	b, ctx := m.bridge, m.ctx
	return func() tea.Msg {
		return mapOutcomeMsg{Outcome: b.Submit(ctx, line)}
	}
}

func (m *Model) click(at geo.Point) tea.Cmd {
	if m.controller == nil {
		return nil
	}
	c, ctx, snapshot := m.controller, m.ctx, m.mapState
	return func() tea.Msg {
		return mapOutcomeMsg{Outcome: c.Click(ctx, snapshot, at)}
	}
}
