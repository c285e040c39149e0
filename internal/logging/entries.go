// pattern: Functional Core

package logging

import (
	"fmt"
	"strings"
	"time"
)

// LogEntry is one structured entry as consumed by the debug TUI's log
// tail.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN, ERROR
	Scope     string // hierarchical scope, e.g. "session.alice"
	Message   string
	Fields    map[string]any
}

// String renders a single-line human-readable form.
func (e LogEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Timestamp.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(e.Level)
	sb.WriteString(" [")
	sb.WriteString(e.Scope)
	sb.WriteString("] ")
	sb.WriteString(e.Message)

	for k, v := range e.Fields {
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}
	return sb.String()
}

// MatchesScope reports whether the entry's scope starts with the prefix.
// An empty prefix matches everything.
func (e LogEntry) MatchesScope(prefix string) bool {
	return prefix == "" || strings.HasPrefix(e.Scope, prefix)
}

// ParseLevel normalizes a level string to uppercase, defaulting to INFO.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "info":
		return "INFO"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}
