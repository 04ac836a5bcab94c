package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	idOne   = "11111111-1111-4111-8111-111111111111"
	idTwo   = "22222222-2222-4222-8222-222222222222"
	idThree = "33333333-3333-4333-8333-333333333333"
)

func seedProject(t *testing.T, root, projectPath string, ids ...string) string {
	t.Helper()
	dir := filepath.Join(root, projectDirName(projectPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir project: %v", err)
	}
	for _, id := range ids {
		if err := os.WriteFile(filepath.Join(dir, id+".jsonl"), []byte("{}\n"), 0o644); err != nil {
			t.Fatalf("write transcript: %v", err)
		}
	}
	return dir
}

func TestListCurrentProjectOnly(t *testing.T) {
	root := t.TempDir()
	seedProject(t, root, "/home/dev/widgets", idOne, idTwo)
	seedProject(t, root, "/home/dev/gadgets", idThree)

	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	summaries, err := store.List(ScopeCurrentProject, "/home/dev/widgets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.CWD != "/home/dev/widgets" {
			t.Fatalf("expected cwd /home/dev/widgets, got %q", s.CWD)
		}
	}
}

func TestListAllProjects(t *testing.T) {
	root := t.TempDir()
	seedProject(t, root, "/home/dev/widgets", idOne)
	seedProject(t, root, "/home/dev/gadgets", idTwo)

	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	summaries, err := store.List(ScopeAllProjects, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(summaries))
	}
}

func TestListSkipsNonTranscriptFiles(t *testing.T) {
	root := t.TempDir()
	dir := seedProject(t, root, "/home/dev/widgets", idOne)
	for _, name := range []string{"notes.jsonl", "sidecar.json", idTwo + ".txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write extra file: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "subagents"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	summaries, err := store.List(ScopeCurrentProject, "/home/dev/widgets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected only the uuid transcript, got %d entries", len(summaries))
	}
}

func TestListOrdersByModifiedDescending(t *testing.T) {
	root := t.TempDir()
	dir := seedProject(t, root, "/home/dev/widgets", idOne, idTwo)
	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, idOne+".jsonl"), older, older); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(filepath.Join(dir, idTwo+".jsonl"), newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	summaries, err := store.List(ScopeCurrentProject, "/home/dev/widgets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(summaries))
	}
	if filepath.Base(summaries[0].Path) != idTwo+".jsonl" {
		t.Fatalf("expected newest first, got %s", summaries[0].Path)
	}
}

func TestListMissingCurrentProjectDirIsEmpty(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	summaries, err := store.List(ScopeCurrentProject, "/no/such/project")
	if err != nil {
		t.Fatalf("expected missing project dir to list empty, got %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no sessions, got %d", len(summaries))
	}
}

func TestSummaryLabelFallbacks(t *testing.T) {
	s := Summary{Path: "/p/" + idOne + ".jsonl"}
	if got := s.Label(); got != idOne {
		t.Fatalf("expected file stem fallback, got %q", got)
	}
	s.FirstLine = "first prompt"
	if got := s.Label(); got != "first prompt" {
		t.Fatalf("expected first line, got %q", got)
	}
	s.DisplayName = "named"
	if got := s.Label(); got != "named" {
		t.Fatalf("expected display name, got %q", got)
	}
}

func TestProjectDirNameRoundTrip(t *testing.T) {
	if got := projectDirName("/Users/foo/bar"); got != "-Users-foo-bar" {
		t.Fatalf("expected -Users-foo-bar, got %q", got)
	}
	if got := projectPathFromDir("-Users-foo-bar"); got != "/Users/foo/bar" {
		t.Fatalf("expected /Users/foo/bar, got %q", got)
	}
}
