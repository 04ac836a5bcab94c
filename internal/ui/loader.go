package ui

import (
	"fmt"

	"github.com/atomicstack/session-tree/internal/logging"
	"github.com/atomicstack/session-tree/internal/logging/events"
	"github.com/atomicstack/session-tree/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// sessionsListedMsg carries the result of the initial listing step.
type sessionsListedMsg struct {
	gen       int
	summaries []session.Summary
	err       error
}

// headerReadMsg carries one completed header read.
type headerReadMsg struct {
	gen    int
	idx    int
	path   string
	header session.Header
	ok     bool
}

func (m *Model) listSessionsCmd(gen int) tea.Cmd {
	store, scope, project := m.store, m.scope, m.projectPath
	return func() tea.Msg {
		summaries, err := store.List(scope, project)
		if err != nil {
			logging.Error(err)
		}
		return sessionsListedMsg{gen: gen, summaries: summaries, err: err}
	}
}

// readHeaderCmd reads the header of the idx-th summary. Reads are issued one
// at a time, each completion scheduling the next, so progress counts are
// strictly increasing and the final count equals the total.
func (m *Model) readHeaderCmd(gen, idx int) tea.Cmd {
	path := m.summaries[idx].Path
	return func() tea.Msg {
		header, ok := session.ReadHeader(path)
		return headerReadMsg{gen: gen, idx: idx, path: path, header: header, ok: ok}
	}
}

func (m *Model) handleSessionsListed(msg sessionsListedMsg) tea.Cmd {
	if msg.gen != m.gen || m.phase != PhaseLoading {
		return nil
	}
	if msg.err != nil {
		// Listing failure is fatal to this invocation: abort before
		// entering the browse phase rather than presenting a broken list.
		m.failure = fmt.Errorf("list sessions: %w", msg.err)
		m.phase = PhaseDone
		events.Loader.Error(msg.err)
		return tea.Quit
	}
	m.summaries = msg.summaries
	m.total = len(msg.summaries)
	m.loaded = 0
	events.Loader.Listed(m.scope.String(), m.total)
	if m.total == 0 {
		m.finishLoading()
		return nil
	}
	m.status = fmt.Sprintf("Loading sessions… 0/%d", m.total)
	return m.readHeaderCmd(m.gen, 0)
}

func (m *Model) handleHeaderRead(msg headerReadMsg) tea.Cmd {
	if msg.gen != m.gen || m.phase != PhaseLoading {
		// A terminal state was reached while this read was in flight.
		events.Loader.Discarded(msg.path)
		return nil
	}
	if msg.ok {
		m.applyHeader(msg.idx, msg.header)
	} else {
		m.headerFailures++
	}
	m.loaded++
	events.Loader.Progress(m.loaded, m.total)
	if m.loaded < m.total {
		m.status = fmt.Sprintf("Loading sessions… %d/%d", m.loaded, m.total)
		return m.readHeaderCmd(m.gen, msg.idx+1)
	}
	m.finishLoading()
	return nil
}

// applyHeader folds a header read into the matching summary. Per-session
// parse failures never reach this point; they surface as ok=false upstream
// and leave the summary untouched.
func (m *Model) applyHeader(idx int, h session.Header) {
	if idx < 0 || idx >= len(m.summaries) {
		return
	}
	s := &m.summaries[idx]
	if h.Summary != "" {
		s.DisplayName = h.Summary
	}
	if h.FirstPrompt != "" {
		s.FirstLine = h.FirstPrompt
	}
	if h.CWD != "" {
		s.CWD = h.CWD
	}
	if !h.Timestamp.IsZero() {
		s.CreatedAt = h.Timestamp
	}
	if h.ParentPath != "" {
		m.parents[s.Path] = h.ParentPath
	}
}

func (m *Model) finishLoading() {
	m.rebuildList()
	m.status = ""
	if m.headerFailures > 0 {
		m.errMsg = fmt.Sprintf("%d of %d session headers unreadable", m.headerFailures, m.total)
	}
	m.phase = PhaseBrowsing
}
