// Package diag collects recoverable conditions met while rewriting a schema.
// Every recorded diagnostic is also logged, so callers that only watch the log
// see the same stream.
package diag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sql2shacl/sql2shacl/tokenizer"
)

// Severity represents diagnostic severity level
type Severity int

const (
	INFO Severity = iota
	WARNING
	ERROR
)

func (s Severity) String() string {
	switch s {
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case INFO:
		return slog.LevelInfo
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Diagnostic is one recorded condition.
type Diagnostic struct {
	Severity Severity
	Relation string
	Message  string
	Position *tokenizer.Position
}

func (d Diagnostic) String() string {
	s := "[" + d.Severity.String() + "] "
	if d.Relation != "" {
		s += d.Relation + ": "
	}
	s += d.Message
	if d.Position != nil {
		s += fmt.Sprintf(" at line %d, column %d", d.Position.Line, d.Position.Column)
	}
	return s
}

// Collector accumulates diagnostics in the order they are reported.
// A nil *Collector is valid and only discards.
type Collector struct {
	logger *slog.Logger
	items  []Diagnostic
}

// NewCollector creates a collector that mirrors every diagnostic to logger.
// A nil logger falls back to slog.Default().
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Logger returns the logger diagnostics are mirrored to.
func (c *Collector) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Warn records a WARNING diagnostic.
func (c *Collector) Warn(relation string, pos *tokenizer.Position, format string, args ...any) {
	c.add(WARNING, relation, pos, format, args...)
}

// Error records an ERROR diagnostic. It does not stop processing.
func (c *Collector) Error(relation string, pos *tokenizer.Position, format string, args ...any) {
	c.add(ERROR, relation, pos, format, args...)
}

func (c *Collector) add(severity Severity, relation string, pos *tokenizer.Position, format string, args ...any) {
	if c == nil {
		return
	}

	d := Diagnostic{
		Severity: severity,
		Relation: relation,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
	c.items = append(c.items, d)

	attrs := []slog.Attr{}
	if relation != "" {
		attrs = append(attrs, slog.String("relation", relation))
	}
	if pos != nil {
		attrs = append(attrs, slog.String("position", pos.String()))
	}
	c.Logger().LogAttrs(context.Background(), severity.level(), d.Message, attrs...)
}

// Items returns the recorded diagnostics.
func (c *Collector) Items() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.items
}

// Count returns how many diagnostics have at least the given severity.
func (c *Collector) Count(minimum Severity) int {
	n := 0
	for _, d := range c.Items() {
		if d.Severity >= minimum {
			n++
		}
	}
	return n
}
