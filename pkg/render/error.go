package render

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Level is the severity of a [Diagnostic].
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	default:
		return "ERROR"
	}
}

func (l Level) MarshalText() ([]byte, error) { return []byte(strings.ToLower(l.String())), nil }

func (l *Level) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "error":
		*l = LevelError
	case "warning":
		*l = LevelWarning
	case "info":
		*l = LevelInfo
	default:
		return fmt.Errorf("unknown diagnostic level %q", text)
	}
	return nil
}

// Diagnostic is one problem reported by the rendering engine.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"` // 0 when unknown
}

// Error is returned when the engine rejects a DOT document.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "Render failed: unknown error"
	case 1:
		d := e.Diagnostics[0]
		if d.Line > 0 {
			return fmt.Sprintf("Render failed at line %d: %s", d.Line, d.Message)
		}
		return "Render failed: " + d.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Render failed with %d error(s):", len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		if d.Line > 0 {
			fmt.Fprintf(&b, "\n  %d. [%s] Line %d: %s", i+1, d.Level, d.Line, d.Message)
		} else {
			fmt.Fprintf(&b, "\n  %d. [%s] %s", i+1, d.Level, d.Message)
		}
	}
	return b.String()
}

// AsError extracts an [*Error] from err's chain.
func AsError(err error) (*Error, bool) {
	var re *Error
	ok := errors.As(err, &re)
	return re, ok
}

var (
	lineRe  = regexp.MustCompile(`(?i)\bline (\d+)`)
	levelRe = regexp.MustCompile(`^(?i)(error|warning|info)\s*:\s*`)
)

// parseDiagnostics splits an engine message into diagnostics, one per
// non-empty line, picking up "Warning:" style prefixes and line numbers.
func parseDiagnostics(msg string) []Diagnostic {
	var out []Diagnostic
	for _, line := range strings.Split(msg, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d := Diagnostic{Level: LevelError, Message: line}
		if m := levelRe.FindStringSubmatch(line); m != nil {
			switch strings.ToLower(m[1]) {
			case "warning":
				d.Level = LevelWarning
			case "info":
				d.Level = LevelInfo
			}
			d.Message = line[len(m[0]):]
		}
		if m := lineRe.FindStringSubmatch(d.Message); m != nil {
			d.Line, _ = strconv.Atoi(m[1])
		}
		out = append(out, d)
	}
	return out
}
