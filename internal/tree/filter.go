package tree

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter returns the entries whose display name, first prompt line, working
// directory, or path contain the query, case-insensitively, preserving
// relative order. An empty or
// whitespace-only query returns the input unchanged. Matched entries keep
// their precomputed prefix verbatim; nesting is not re-derived for the
// filtered subset.
func Filter(entries []FlatEntry, query string) []FlatEntry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return entries
	}
	needle := strings.ToLower(trimmed)
	filtered := make([]FlatEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(matchTarget(entry), needle) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func matchTarget(entry FlatEntry) string {
	s := entry.Session.Summary
	return strings.ToLower(s.DisplayName + " " + s.FirstLine + " " + s.CWD + " " + s.Path)
}

// BestMatchIndex picks the entry a committed query most likely refers to:
// exact label match first, then label prefix, then the best fuzzy rank.
// Returns -1 when entries is empty.
func BestMatchIndex(entries []FlatEntry, query string) int {
	if len(entries) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, entry := range entries {
		if strings.EqualFold(entry.Session.Summary.Label(), trimmed) {
			return i
		}
	}
	for i, entry := range entries {
		if strings.HasPrefix(strings.ToLower(entry.Session.Summary.Label()), lower) {
			return i
		}
	}
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.Session.Summary.Label()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(entries) {
		return 0
	}
	return best.OriginalIndex
}
