// Package session enumerates recorded conversation transcripts and reads
// their leading header records. Transcripts live under a Claude-style
// projects root: one directory per project (the project path with "/"
// swapped for "-"), each holding <uuid>.jsonl files.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Summary is the listing-time view of a session. It is built from file
// metadata only; DisplayName and FirstLine are filled in later from the
// header read.
type Summary struct {
	Path        string
	DisplayName string
	FirstLine   string
	CWD         string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Label returns the text shown for the session: the display name when one
// exists, otherwise the first prompt line, otherwise the file stem.
func (s Summary) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.FirstLine != "" {
		return s.FirstLine
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Scope selects which project directories a listing covers.
type Scope int

const (
	ScopeCurrentProject Scope = iota
	ScopeAllProjects
)

func (s Scope) String() string {
	if s == ScopeAllProjects {
		return "all-projects"
	}
	return "current-project"
}

// Store lists session transcripts beneath a projects root.
type Store struct {
	root string
}

// NewStore resolves the projects root. An empty root falls back to
// ~/.claude/projects.
func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		root = filepath.Join(home, ".claude", "projects")
	}
	return &Store{root: root}, nil
}

// Root returns the resolved projects root.
func (s *Store) Root() string { return s.root }

// List enumerates session summaries. For ScopeCurrentProject only the
// directory matching projectPath is read; for ScopeAllProjects every project
// directory is. Results are ordered by modification time descending so the
// caller sees a stable snapshot.
func (s *Store) List(scope Scope, projectPath string) ([]Summary, error) {
	var dirs []string
	switch scope {
	case ScopeCurrentProject:
		dirs = []string{filepath.Join(s.root, projectDirName(projectPath))}
	case ScopeAllProjects:
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return nil, fmt.Errorf("read projects root: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(s.root, entry.Name()))
			}
		}
	default:
		return nil, fmt.Errorf("unknown listing scope %d", scope)
	}

	var summaries []Summary
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) && scope == ScopeCurrentProject {
				return nil, nil
			}
			if scope == ScopeAllProjects {
				continue
			}
			return nil, fmt.Errorf("read project dir %s: %w", dir, err)
		}
		cwd := projectPathFromDir(filepath.Base(dir))
		if scope == ScopeCurrentProject {
			cwd = projectPath
		}
		for _, entry := range entries {
			if entry.IsDir() || !isTranscriptName(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			summaries = append(summaries, Summary{
				Path:       filepath.Join(dir, entry.Name()),
				CWD:        cwd,
				CreatedAt:  info.ModTime(),
				ModifiedAt: info.ModTime(),
			})
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ModifiedAt.After(summaries[j].ModifiedAt)
	})
	return summaries, nil
}

// isTranscriptName reports whether the file name is a <uuid>.jsonl transcript.
// Sidecar files and subagent directories share the project dirs, so the stem
// must parse as a UUID.
func isTranscriptName(name string) bool {
	if !strings.HasSuffix(name, ".jsonl") {
		return false
	}
	stem := strings.TrimSuffix(name, ".jsonl")
	_, err := uuid.Parse(stem)
	return err == nil
}

// projectDirName converts an absolute project path to its directory name:
// /Users/foo/bar -> -Users-foo-bar
func projectDirName(projectPath string) string {
	return strings.ReplaceAll(projectPath, "/", "-")
}

// projectPathFromDir is the best-effort inverse of projectDirName.
func projectPathFromDir(dirName string) string {
	if dirName == "" {
		return ""
	}
	return strings.ReplaceAll(dirName, "-", "/")
}
