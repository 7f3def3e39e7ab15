package sessions

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

const (
	// Session logs are unbounded append files, so only the edges are read:
	// enough of the head for the first record and a bounded tail for the last.
	headReadSize = 8 * 1024
	tailReadSize = 64 * 1024
)

// EdgeLines holds the first and last nonempty lines of a session log.
type EdgeLines struct {
	First string
	Last  string
}

// ReadEdgeLines extracts the first and last lines of the file without reading
// it in full. ok is false when the file has no usable content or cannot be
// read; callers treat that as "skip this file".
func ReadEdgeLines(path string) (EdgeLines, bool) {
	f, err := os.Open(path)
	if err != nil {
		return EdgeLines{}, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return EdgeLines{}, false
	}
	size := info.Size()

	headLen := int64(headReadSize)
	if size < headLen {
		headLen = size
	}
	head := make([]byte, headLen)
	if _, err := io.ReadFull(f, head); err != nil {
		return EdgeLines{}, false
	}

	first := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		first = head[:i]
	}
	// A first line longer than the head buffer arrives truncated; the leading
	// fields are still parseable, which is all the timestamp lookup needs.
	firstLine := strings.TrimRight(string(first), "\r")
	if strings.TrimSpace(firstLine) == "" {
		return EdgeLines{}, false
	}

	lines := EdgeLines{First: firstLine, Last: firstLine}

	tailStart := size - tailReadSize
	if tailStart < 0 {
		tailStart = 0
	}
	tail := make([]byte, size-tailStart)
	if _, err := f.ReadAt(tail, tailStart); err != nil {
		// Degenerate fallback: treat the file as single-line.
		return lines, true
	}
	for _, raw := range splitLinesReverse(tail) {
		if strings.TrimSpace(raw) != "" {
			lines.Last = strings.TrimRight(raw, "\r")
			break
		}
	}
	return lines, true
}

func splitLinesReverse(data []byte) []string {
	parts := strings.Split(string(data), "\n")
	out := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		out = append(out, parts[i])
	}
	return out
}

// logRecord is the subset of a session log line we care about. Current logs
// carry the timestamp under "timestamp"; older ones used "ts".
type logRecord struct {
	Timestamp string `json:"timestamp"`
	TS        string `json:"ts"`
}

// LineTimestamp parses the timestamp out of one log line. ok is false when
// the line carries no parseable timestamp; malformed lines never error.
func LineTimestamp(line string) (time.Time, bool) {
	var rec logRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		// Truncated head lines are not valid JSON as a whole, but the
		// timestamp field near the front usually survives the cut.
		rec.Timestamp = extractStringField(line, "timestamp")
		rec.TS = extractStringField(line, "ts")
	}

	raw := rec.Timestamp
	if raw == "" {
		raw = rec.TS
	}
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// extractStringField scans for `"key":"value"` in a possibly truncated JSON
// line and returns the value, or "" if not found intact.
func extractStringField(line, key string) string {
	marker := `"` + key + `":`
	i := strings.Index(line, marker)
	if i < 0 {
		return ""
	}
	rest := line[i+len(marker):]
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, `"`) {
		return ""
	}
	rest = rest[1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}
