package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/session-tree/internal/tree"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.titleText(), style: m.styles.Title})

	switch m.phase {
	case PhaseLoading:
		lines = append(lines, styledLine{text: m.status, style: m.styles.Loading})
	default:
		lines = append(lines, m.entryLines()...)
	}

	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter select  / search  esc cancel", style: m.styles.Footer})
	}

	// Reserve 2 rows for the bottom bar (error/status + search prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	bottomLines := []styledLine{
		statusLine,
		{text: m.searchPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) titleText() string {
	if m.scope.String() == "all-projects" {
		return "sessions — all projects"
	}
	return "sessions — " + m.projectPath
}

func (m *Model) entryLines() []styledLine {
	entries := m.list.Entries
	if len(entries) == 0 {
		msg := "(no sessions)"
		if m.list.Filtered() {
			msg = fmt.Sprintf("No matches for %q", strings.TrimSpace(m.list.Query))
		}
		return []styledLine{{text: msg, style: m.styles.Info}}
	}

	maxVisible := m.maxVisible()
	m.list.EnsureCursorVisible(maxVisible)
	start := m.list.ViewportOffset
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > len(entries) {
		end = len(entries)
	}

	lines := make([]styledLine, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, m.entryLine(entries[i], i == m.list.Cursor))
	}
	if len(entries) > maxVisible {
		lines = append(lines, styledLine{
			text:  fmt.Sprintf("%d–%d of %d", start+1, end, len(entries)),
			style: m.styles.Position,
		})
	}
	return lines
}

// entryLine renders one row: tree prefix, current-session marker, truncated
// label, and a right-aligned relative-time label. In cross-project mode the
// working directory is appended after the label.
func (m *Model) entryLine(entry tree.FlatEntry, selected bool) styledLine {
	s := entry.Session.Summary
	marker := "  "
	if m.currentPath != "" && s.Path == m.currentPath {
		marker = "● "
	}
	label := s.Label()
	suffix := ""
	if m.scope.String() == "all-projects" && s.CWD != "" {
		suffix = "  " + s.CWD
	}
	right := humanize.Time(s.ModifiedAt)

	width := m.width
	if width <= 0 {
		width = 80
	}
	rightW := runewidth.StringWidth(right)
	avail := width - rightW - 1
	if avail < 8 {
		right = ""
		rightW = 0
		avail = width
	}

	prefixW := runewidth.StringWidth(entry.Prefix) + runewidth.StringWidth(marker)
	body := runewidth.Truncate(label+suffix, max(avail-prefixW, 1), "…")
	pad := avail - prefixW - runewidth.StringWidth(body)
	if pad < 0 {
		pad = 0
	}

	if selected {
		row := entry.Prefix + marker + body + strings.Repeat(" ", pad)
		if right != "" {
			row += " " + right
		}
		if m.styles.SelectedItem != nil {
			return styledLine{text: m.styles.SelectedItem.Render(row), raw: true}
		}
		return styledLine{text: row, raw: true}
	}

	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	labelPart, suffixPart := body, ""
	if suffix != "" && strings.HasPrefix(body, label) {
		labelPart = label
		suffixPart = strings.TrimPrefix(body, label)
	}
	row := render(m.styles.TreePrefix, entry.Prefix) +
		render(m.styles.CurrentMarker, marker) +
		render(m.styles.Item, labelPart) +
		render(m.styles.Directory, suffixPart) +
		strings.Repeat(" ", pad)
	if right != "" {
		row += " " + render(m.styles.Time, right)
	}
	return styledLine{text: row, raw: true}
}

func (m *Model) searchPrompt() string {
	if m.phase == PhaseSearching {
		return m.searchInput.View()
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil {
			return value
		}
		return style.Render(value)
	}
	if query := strings.TrimSpace(m.list.Query); query != "" {
		return render(m.styles.FilterPrompt, "» ") + render(m.styles.Filter, query)
	}
	if m.phase == PhaseBrowsing {
		return render(m.styles.FilterPlaceholder, "/ to search")
	}
	return ""
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw || line.style == nil {
			out[i] = line.text
			continue
		}
		out[i] = line.style.Render(line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
