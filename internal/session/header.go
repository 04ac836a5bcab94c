package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// headerScanLines bounds how many leading records are examined, so a
	// header read costs the same for a ten-line transcript and a
	// hundred-megabyte one.
	headerScanLines = 8
	headerMaxLine   = 256 * 1024
)

// Header holds the metadata extracted from a transcript's leading records.
type Header struct {
	// ParentPath is the resolved path of the session this one was branched
	// from; empty when the header carries no parent reference.
	ParentPath  string
	Summary     string
	FirstPrompt string
	CWD         string
	Timestamp   time.Time
}

// headerLine mirrors the fields of interest on a leading transcript record.
type headerLine struct {
	Type            string          `json:"type"`
	Summary         string          `json:"summary"`
	SessionID       string          `json:"sessionId"`
	ParentSessionID string          `json:"parentSessionId"`
	CWD             string          `json:"cwd"`
	Timestamp       string          `json:"timestamp"`
	Message         *messagePayload `json:"message"`
}

type messagePayload struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// recognizedTypes lists the record types a transcript may legitimately open
// with. Anything else means the file is not one of ours.
var recognizedTypes = map[string]struct{}{
	"summary":               {},
	"user":                  {},
	"assistant":             {},
	"system":                {},
	"file-history-snapshot": {},
}

// ReadHeader extracts header metadata from the session at path. Only a
// bounded leading portion of the file is read. The second return value is
// false when the file is missing, malformed, or not a recognized transcript;
// those cases are recovered locally and never surface as errors.
func ReadHeader(path string) (Header, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), headerMaxLine)

	var h Header
	recognized := false
	for lines := 0; lines < headerScanLines && scanner.Scan(); lines++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var hl headerLine
		if err := json.Unmarshal(line, &hl); err != nil {
			continue
		}
		if _, ok := recognizedTypes[hl.Type]; !ok {
			continue
		}
		recognized = true
		if h.Summary == "" && hl.Summary != "" {
			h.Summary = hl.Summary
		}
		if h.ParentPath == "" && hl.ParentSessionID != "" {
			h.ParentPath = filepath.Join(filepath.Dir(path), hl.ParentSessionID+".jsonl")
		}
		if h.CWD == "" && hl.CWD != "" {
			h.CWD = hl.CWD
		}
		if h.Timestamp.IsZero() && hl.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, hl.Timestamp); err == nil {
				h.Timestamp = ts
			}
		}
		if h.FirstPrompt == "" && hl.Message != nil && hl.Message.Role == "user" {
			h.FirstPrompt = firstTextLine(hl.Message.Content)
		}
	}
	// Scanner errors (oversized line, IO failure) degrade to whatever was
	// parsed so far; a header that never yielded a recognized record is
	// reported as absent.
	return h, recognized
}

// firstTextLine extracts the first line of a message content payload, which
// is either a plain string or an array of typed content blocks.
func firstTextLine(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return firstLineOf(text)
	}
	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err == nil {
		for _, b := range blocks {
			if b.Type == "text" && b.Text != "" {
				return firstLineOf(b.Text)
			}
		}
	}
	return ""
}

func firstLineOf(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
