package ui

import (
	"github.com/atomicstack/session-tree/internal/session"
	"github.com/atomicstack/session-tree/internal/theme"
	"github.com/atomicstack/session-tree/internal/tree"
	uistate "github.com/atomicstack/session-tree/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Phase tracks where the navigator is in its lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseBrowsing
	PhaseSearching
	PhaseDone
)

// Outcome is the terminal result of a navigation session.
type Outcome struct {
	Path     string
	Selected bool
}

// Model implements the Bubble Tea model for the session tree navigator.
type Model struct {
	styles *theme.Styles
	store  *session.Store
	scope  session.Scope

	projectPath string
	currentPath string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	phase Phase
	// gen guards against late loader results: any message minted under an
	// older generation is discarded instead of applied.
	gen int

	summaries []session.Summary
	parents   map[string]string
	loaded    int
	total     int
	// headerFailures counts sessions whose header read came back absent;
	// they stay listed under their file-stem label.
	headerFailures int
	status         string
	errMsg         string

	list        *uistate.List
	searchInput textinput.Model

	outcome Outcome
	failure error
}

// Params bundles everything NewModel needs.
type Params struct {
	Store          *session.Store
	Scope          session.Scope
	ProjectPath    string
	CurrentSession string
	Width          int
	Height         int
	ShowFooter     bool
	Styles         *theme.Styles
}

// NewModel initialises the navigator in its loading phase.
func NewModel(p Params) *Model {
	styles := p.Styles
	if styles == nil {
		styles = theme.Default()
	}
	input := textinput.New()
	input.Prompt = "» "
	input.Placeholder = "type to search"
	if styles.FilterPrompt != nil {
		input.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		input.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		input.PlaceholderStyle = *styles.FilterPlaceholder
	}
	m := &Model{
		styles:      styles,
		store:       p.Store,
		scope:       p.Scope,
		projectPath: p.ProjectPath,
		currentPath: p.CurrentSession,
		showFooter:  p.ShowFooter,
		phase:       PhaseLoading,
		status:      "Loading sessions…",
		parents:     make(map[string]string),
		list:        uistate.NewList(nil),
		searchInput: input,
	}
	if p.Width > 0 {
		m.width = p.Width
		m.fixedWidth = true
	}
	if p.Height > 0 {
		m.height = p.Height
		m.fixedHeight = true
	}
	return m
}

// Outcome returns the terminal result once the program has quit.
func (m *Model) Outcome() Outcome { return m.outcome }

// Err returns the operation-level failure, if the listing step failed.
func (m *Model) Err() error { return m.failure }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.listSessionsCmd(m.gen)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.fixedWidth {
			m.width = msg.Width
		}
		if !m.fixedHeight {
			m.height = msg.Height
		}
		m.list.EnsureCursorVisible(m.maxVisible())
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case sessionsListedMsg:
		return m, m.handleSessionsListed(msg)
	case headerReadMsg:
		return m, m.handleHeaderRead(msg)
	}
	if m.phase == PhaseSearching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// maxVisible sizes the scroll window from the terminal row count.
func (m *Model) maxVisible() int {
	rows := m.height
	if rows <= 0 {
		return 5
	}
	visible := rows * 6 / 10
	if visible < 5 {
		visible = 5
	}
	return visible
}

// rebuildList constructs the forest from the loaded summaries and resets the
// navigable list, pre-selecting the current session when present.
func (m *Model) rebuildList() {
	nodes := make([]tree.SessionNode, 0, len(m.summaries))
	for _, s := range m.summaries {
		nodes = append(nodes, tree.SessionNode{Summary: s, ParentPath: m.parents[s.Path]})
	}
	entries := tree.Flatten(tree.Build(nodes))
	m.list = uistate.NewList(entries)
	if idx := m.list.IndexOf(m.currentPath); idx >= 0 {
		m.list.Cursor = idx
	}
	m.list.EnsureCursorVisible(m.maxVisible())
}
