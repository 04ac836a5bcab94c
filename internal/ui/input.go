package ui

import (
	"github.com/atomicstack/session-tree/internal/logging/events"
	"github.com/atomicstack/session-tree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.phase {
	case PhaseLoading:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			// Cancel immediately; in-flight reads are suppressed by the
			// generation guard when their results arrive.
			return m.cancel()
		}
		return nil
	case PhaseBrowsing:
		return m.handleBrowsingKey(msg)
	case PhaseSearching:
		return m.handleSearchingKey(msg)
	}
	return nil
}

func (m *Model) handleBrowsingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m.cancel()
	case "enter":
		return m.commitSelection()
	case "/":
		m.phase = PhaseSearching
		m.searchInput.SetValue(m.list.Query)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()
	case "up":
		if m.list.MoveCursorUp() {
			events.Nav.Cursor(m.list.Cursor)
		}
	case "down":
		if m.list.MoveCursorDown() {
			events.Nav.Cursor(m.list.Cursor)
		}
	case "pgup":
		if m.list.MoveCursorPageUp(m.maxVisible()) {
			events.Nav.Cursor(m.list.Cursor)
		}
	case "pgdown":
		if m.list.MoveCursorPageDown(m.maxVisible()) {
			events.Nav.Cursor(m.list.Cursor)
		}
	case "home":
		if m.list.MoveCursorHome() {
			events.Nav.Cursor(m.list.Cursor)
		}
	case "end":
		if m.list.MoveCursorEnd() {
			events.Nav.Cursor(m.list.Cursor)
		}
	}
	m.list.EnsureCursorVisible(m.maxVisible())
	return nil
}

func (m *Model) handleSearchingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.cancel()
	case "esc":
		// Cancel the search: clear the query and return to browsing.
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.list.ClearQuery()
		m.list.EnsureCursorVisible(m.maxVisible())
		m.phase = PhaseBrowsing
		events.Filter.Cleared()
		return nil
	case "enter":
		// Keep the filter and return to browsing, jumping to the entry the
		// query most likely meant.
		m.searchInput.Blur()
		if idx := tree.BestMatchIndex(m.list.Entries, m.list.Query); idx >= 0 {
			m.list.Cursor = idx
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		m.phase = PhaseBrowsing
		events.Filter.Committed(m.list.Query, m.list.Cursor)
		return nil
	case "up":
		if m.list.MoveCursorUp() {
			events.Nav.Cursor(m.list.Cursor)
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		return nil
	case "down":
		if m.list.MoveCursorDown() {
			events.Nav.Cursor(m.list.Cursor)
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		return nil
	case "pgup":
		if m.list.MoveCursorPageUp(m.maxVisible()) {
			events.Nav.Cursor(m.list.Cursor)
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		return nil
	case "pgdown":
		if m.list.MoveCursorPageDown(m.maxVisible()) {
			events.Nav.Cursor(m.list.Cursor)
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if query := m.searchInput.Value(); query != m.list.Query {
		m.list.SetQuery(query)
		m.list.EnsureCursorVisible(m.maxVisible())
		events.Filter.Query(query, len(m.list.Entries))
	}
	return cmd
}

func (m *Model) commitSelection() tea.Cmd {
	entry, ok := m.list.Selected()
	if !ok {
		return nil
	}
	m.outcome = Outcome{Path: entry.Session.Summary.Path, Selected: true}
	m.phase = PhaseDone
	m.gen++
	events.Nav.Select(m.outcome.Path)
	return tea.Quit
}

func (m *Model) cancel() tea.Cmd {
	m.outcome = Outcome{}
	m.phase = PhaseDone
	m.gen++
	events.Nav.Cancel()
	return tea.Quit
}
