package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/session-tree/internal/session"
	"github.com/atomicstack/session-tree/internal/theme"
	"github.com/atomicstack/session-tree/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Root           string
	AllProjects    bool
	CurrentSession string
	Width          int
	Height         int
	ShowFooter     bool
}

// Run bootstraps and executes the Bubble Tea program. It returns the selected
// session path, whether a selection was made, and any operation-level error.
func Run(cfg Config) (string, bool, error) {
	store, err := session.NewStore(cfg.Root)
	if err != nil {
		return "", false, fmt.Errorf("resolve session store: %w", err)
	}

	scope := session.ScopeCurrentProject
	projectPath := ""
	if cfg.AllProjects {
		scope = session.ScopeAllProjects
	} else {
		projectPath, err = os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	model := ui.NewModel(ui.Params{
		Store:          store,
		Scope:          scope,
		ProjectPath:    projectPath,
		CurrentSession: cfg.CurrentSession,
		Width:          cfg.Width,
		Height:         cfg.Height,
		ShowFooter:     cfg.ShowFooter,
		Styles:         theme.Default(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return "", false, err
	}
	if err := model.Err(); err != nil {
		return "", false, err
	}
	outcome := model.Outcome()
	return outcome.Path, outcome.Selected, nil
}
