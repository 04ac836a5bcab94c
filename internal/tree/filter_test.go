package tree

import (
	"testing"
	"time"

	"github.com/atomicstack/session-tree/internal/session"
)

func entryWith(path, name, cwd string) FlatEntry {
	return FlatEntry{Session: SessionNode{Summary: session.Summary{
		Path:        path,
		DisplayName: name,
		CWD:         cwd,
		ModifiedAt:  time.Unix(1, 0),
	}}}
}

func TestFilterEmptyQueryReturnsAllUnchanged(t *testing.T) {
	entries := []FlatEntry{
		entryWith("/a", "alpha", "/proj"),
		entryWith("/b", "beta", "/proj"),
	}
	for _, query := range []string{"", "   ", "\t"} {
		got := Filter(entries, query)
		if len(got) != len(entries) {
			t.Fatalf("query %q: expected full list, got %d entries", query, len(got))
		}
		for i := range got {
			if got[i].Session.Summary.Path != entries[i].Session.Summary.Path {
				t.Fatalf("query %q: order changed at %d", query, i)
			}
		}
	}
}

func TestFilterNonMatchingQueryReturnsEmpty(t *testing.T) {
	entries := []FlatEntry{entryWith("/a", "alpha", "/proj")}
	if got := Filter(entries, "zzz-no-match"); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	entries := []FlatEntry{
		entryWith("/a", "Fix Parser Bug", "/proj"),
		entryWith("/b", "add tests", "/proj"),
	}
	got := Filter(entries, "PARSER")
	if len(got) != 1 || got[0].Session.Summary.Path != "/a" {
		t.Fatalf("expected only /a to match, got %v", got)
	}
}

func TestFilterMatchesCWDAndPath(t *testing.T) {
	entries := []FlatEntry{
		entryWith("/sessions/deadbeef.jsonl", "work", "/home/dev/widgets"),
		entryWith("/sessions/cafef00d.jsonl", "play", "/home/dev/gadgets"),
	}
	if got := Filter(entries, "widgets"); len(got) != 1 || got[0].Session.Summary.Path != "/sessions/deadbeef.jsonl" {
		t.Fatalf("expected cwd match, got %v", got)
	}
	if got := Filter(entries, "cafef00d"); len(got) != 1 || got[0].Session.Summary.Path != "/sessions/cafef00d.jsonl" {
		t.Fatalf("expected path match, got %v", got)
	}
}

func TestFilterMatchesFirstPromptBehindDisplayName(t *testing.T) {
	named := entryWith("/sessions/deadbeef.jsonl", "Refactor storage layer", "/proj")
	named.Session.Summary.FirstLine = "please fix the flaky migration"
	entries := []FlatEntry{
		named,
		entryWith("/sessions/cafef00d.jsonl", "other work", "/proj"),
	}
	if got := Filter(entries, "migration"); len(got) != 1 || got[0].Session.Summary.Path != "/sessions/deadbeef.jsonl" {
		t.Fatalf("expected first prompt to stay searchable when a display name exists, got %v", got)
	}
	if got := Filter(entries, "refactor"); len(got) != 1 || got[0].Session.Summary.Path != "/sessions/deadbeef.jsonl" {
		t.Fatalf("expected display name match, got %v", got)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	entries := []FlatEntry{
		entryWith("/a", "alpha", "/proj"),
		entryWith("/ab", "alphabet", "/proj"),
		entryWith("/b", "beta", "/proj"),
	}
	once := Filter(entries, "alpha")
	twice := Filter(once, "alpha")
	if len(once) != len(twice) {
		t.Fatalf("expected idempotent filter, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Session.Summary.Path != twice[i].Session.Summary.Path {
			t.Fatalf("re-filtering changed entry %d", i)
		}
	}
}

func TestFilterPreservesPrefixVerbatim(t *testing.T) {
	entries := Flatten(Build([]SessionNode{
		node("/a", "", 10, 10),
		node("/b", "/a", 11, 11),
		node("/c", "", 5, 20),
	}))
	got := Filter(entries, "/b")
	if len(got) != 1 {
		t.Fatalf("expected single match, got %d", len(got))
	}
	if got[0].Prefix != "└─ " {
		t.Fatalf("expected prefix preserved verbatim, got %q", got[0].Prefix)
	}
}

func TestFilterUniquePathSubstringReducesToOne(t *testing.T) {
	entries := Flatten(Build([]SessionNode{
		node("/a", "", 10, 10),
		node("/b", "/a", 11, 11),
		node("/c", "", 5, 20),
	}))
	got := Filter(entries, "/c")
	if len(got) != 1 || got[0].Session.Summary.Path != "/c" {
		t.Fatalf("expected only /c, got %v", paths(got))
	}
	if got[0].Prefix != "" {
		t.Fatalf("expected root prefix unchanged, got %q", got[0].Prefix)
	}
}

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	entries := []FlatEntry{
		entryWith("/a", "alphabet", ""),
		entryWith("/b", "alpha", ""),
		entryWith("/c", "beta", ""),
	}
	if idx := BestMatchIndex(entries, "alpha"); idx != 1 {
		t.Fatalf("expected exact match at 1, got %d", idx)
	}
	if idx := BestMatchIndex(entries, "alp"); idx != 0 {
		t.Fatalf("expected first prefix match at 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty entries, got %d", idx)
	}
	if idx := BestMatchIndex(entries, ""); idx != 0 {
		t.Fatalf("expected 0 for empty query, got %d", idx)
	}
}
