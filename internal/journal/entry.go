package journal

import (
	"strconv"
	"strings"
)

// Severity bounds. Severity 1 also carries emergencies.
const (
	MinSeverity     = 1
	MaxSeverity     = 7
	DefaultSeverity = 4
)

var severityNames = [...]string{
	1: "alert",
	2: "crit",
	3: "err",
	4: "warning",
	5: "notice",
	6: "info",
	7: "debug",
}

// SeverityName returns the syslog keyword for severity.
func SeverityName(severity int) string {
	if severity < MinSeverity || severity > MaxSeverity {
		return "unknown"
	}
	return severityNames[severity]
}

// SeverityNames lists the keywords for MinSeverity..MaxSeverity in order.
func SeverityNames() []string {
	return append([]string(nil), severityNames[MinSeverity:]...)
}

// ClampSeverity limits severity to the valid range.
func ClampSeverity(severity int) int {
	return min(max(severity, MinSeverity), MaxSeverity)
}

// LogEntry is one parsed journal line.
type LogEntry struct {
	Severity  int
	Timestamp string
	Hostname  string
	Service   string
	Message   string
}

// String renders the entry in journalctl's short format.
func (e LogEntry) String() string {
	return e.Timestamp + " " + e.Hostname + " " + e.Service + ": " + e.Message
}

// Label is a one-line summary used in the detail title.
func (e LogEntry) Label() string {
	return "[" + strconv.Itoa(e.Severity) + " " + SeverityName(e.Severity) + "] " + e.Service
}

// ParseEntry parses one line of journalctl output. The default short format
// has a three token timestamp ("Oct 19 10:42:01"); ISO dates take two tokens
// ("2024-01-01 10:00:00") or one when date and time are joined by "T".
// Journal banners ("-- No entries --", "-- Boot ... --") and lines with fewer
// than six tokens are rejected.
func ParseEntry(line string, severity int) (LogEntry, bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "--") {
		return LogEntry{}, false
	}
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return LogEntry{}, false
	}
	n := timestampWidth(fields[0])
	return LogEntry{
		Severity:  severity,
		Timestamp: strings.Join(fields[:n], " "),
		Hostname:  fields[n],
		Service:   strings.TrimSuffix(fields[n+1], ":"),
		Message:   strings.Join(fields[n+2:], " "),
	}, true
}

func timestampWidth(first string) int {
	if !isISODate(first) {
		return 3
	}
	if len(first) > 10 && first[10] == 'T' {
		return 1
	}
	return 2
}

// isISODate reports whether s starts with YYYY-MM-DD.
func isISODate(s string) bool {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s[:10] {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) == 10 || s[10] == 'T'
}

// ParseEntries parses every line, dropping rejected ones. It returns the
// entries in input order and the number of rejected non-blank lines.
func ParseEntries(lines []string, severity int) ([]LogEntry, int) {
	entries := make([]LogEntry, 0, len(lines))
	rejected := 0
	for _, line := range lines {
		if e, ok := ParseEntry(line, severity); ok {
			entries = append(entries, e)
		} else if strings.TrimSpace(line) != "" {
			rejected++
		}
	}
	return entries, rejected
}

// ParseListing parses one severity's query output. The first line is a
// column header and is skipped; banners later in the stream are still
// rejected by ParseEntry.
func ParseListing(lines []string, severity int) ([]LogEntry, int) {
	if len(lines) > 0 {
		lines = lines[1:]
	}
	return ParseEntries(lines, severity)
}
