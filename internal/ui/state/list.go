// Package state holds the navigator's mutable list state: cursor position,
// filter query, and viewport offset. Everything here belongs to a single
// logical thread of control; the event loop provides ordering.
package state

import (
	"strings"

	"github.com/atomicstack/session-tree/internal/tree"
)

// List is a filterable, scrollable view over the flattened forest.
type List struct {
	Full           []tree.FlatEntry
	Entries        []tree.FlatEntry
	Query          string
	Cursor         int
	ViewportOffset int
}

// NewList wraps the flattened entries.
func NewList(entries []tree.FlatEntry) *List {
	l := &List{}
	l.SetEntries(entries)
	return l
}

// SetEntries replaces the backing entries and re-applies the current query.
func (l *List) SetEntries(entries []tree.FlatEntry) {
	l.Full = append([]tree.FlatEntry(nil), entries...)
	l.applyFilter()
}

// SetQuery updates the filter query, re-runs the filter, and clamps the
// cursor into the new bounds.
func (l *List) SetQuery(query string) {
	l.Query = query
	l.applyFilter()
}

// ClearQuery drops the filter and restores the full list.
func (l *List) ClearQuery() {
	l.SetQuery("")
}

// Filtered reports whether a non-empty query is active.
func (l *List) Filtered() bool {
	return strings.TrimSpace(l.Query) != ""
}

func (l *List) applyFilter() {
	l.Entries = tree.Filter(l.Full, l.Query)
	if len(l.Entries) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Entries) {
		l.Cursor = len(l.Entries) - 1
	}
	if l.ViewportOffset > len(l.Entries)-1 {
		l.ViewportOffset = 0
	}
}

// Selected returns the entry under the cursor.
func (l *List) Selected() (tree.FlatEntry, bool) {
	if len(l.Entries) == 0 || l.Cursor < 0 || l.Cursor >= len(l.Entries) {
		return tree.FlatEntry{}, false
	}
	return l.Entries[l.Cursor], true
}

// IndexOf returns the index of the entry with the given session path.
func (l *List) IndexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, entry := range l.Entries {
		if entry.Session.Summary.Path == path {
			return i
		}
	}
	return -1
}

// MoveCursorUp moves the selection one step up, wrapping at the top.
func (l *List) MoveCursorUp() bool {
	n := len(l.Entries)
	if n == 0 {
		return false
	}
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	return true
}

// MoveCursorDown moves the selection one step down, wrapping at the bottom.
func (l *List) MoveCursorDown() bool {
	n := len(l.Entries)
	if n == 0 {
		return false
	}
	if l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	return true
}

// MoveCursorHome moves the cursor to the first entry.
func (l *List) MoveCursorHome() bool {
	if len(l.Entries) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last entry.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Entries)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Entries) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Entries) {
		l.Cursor = len(l.Entries) - 1
	}
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Entries)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset by the minimum amount
// needed to keep the cursor inside the visible window.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Entries) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Entries) {
		l.Cursor = len(l.Entries) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Entries) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
