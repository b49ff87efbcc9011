// Package perr defines the error model shared by every parser in this
// module: a file offset that resolves to line/column on demand, a parse
// error carrying one of those offsets, and a warning collector for
// non-fatal diagnostics.
package perr

import "fmt"

// Offset is a byte offset into a source string, or the end-of-string
// sentinel produced when a parser runs off the end of its input.
type Offset struct {
	pos    int
	atEnd  bool
	source string // retained only to resolve Line/Column on demand
}

// AtOffset builds an Offset pointing at a byte position within source.
func AtOffset(source string, pos int) Offset {
	return Offset{pos: pos, source: source}
}

// EndOf builds the end-of-string sentinel offset for source.
func EndOf(source string) Offset {
	return Offset{pos: len(source), atEnd: true, source: source}
}

// IsEnd reports whether this offset is the end-of-string sentinel.
func (o Offset) IsEnd() bool { return o.atEnd }

// Pos returns the raw byte position (valid even when IsEnd is true, in
// which case it equals len(source)).
func (o Offset) Pos() int { return o.pos }

// LineColumn resolves the offset to a 1-based line and 0-based column by
// scanning source up to pos. It is intentionally O(n): callers only do
// this to format a diagnostic, not in a hot path.
func (o Offset) LineColumn() (line, column int) {
	line = 1
	lastNewline := -1
	limit := o.pos
	if limit > len(o.source) {
		limit = len(o.source)
	}
	for i := 0; i < limit; i++ {
		if o.source[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, limit - lastNewline - 1
}

func (o Offset) String() string {
	if o.atEnd {
		return "<end of string>"
	}
	line, col := o.LineColumn()
	return fmt.Sprintf("%d:%d", line, col)
}

// Error is a parse error with a reason and the offset it occurred at.
// Warnings share this exact shape (see Warning below) and only differ in
// how callers handle them: an Error generally aborts the smallest
// independently-parseable unit, a Warning does not.
type Error struct {
	Reason   string
	Location Offset
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Reason, e.Location)
}

// New builds an *Error with the given reason and location.
func New(reason string, loc Offset) *Error {
	return &Error{Reason: reason, Location: loc}
}

// Newf builds an *Error with a formatted reason.
func Newf(loc Offset, format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...), Location: loc}
}

// Warning is a non-fatal diagnostic with the same shape as Error.
type Warning struct {
	Reason   string
	Location Offset
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %s", w.Reason, w.Location)
}

// Collector accumulates warnings for a single parse. The zero value is
// usable; a nil *Collector silently discards warnings, so callers that
// don't care can pass one in without a nil check.
type Collector struct {
	warnings []Warning
}

// Push records a warning. Safe to call on a nil receiver.
func (c *Collector) Push(w Warning) {
	if c == nil {
		return
	}
	c.warnings = append(c.warnings, w)
}

// Pushf records a warning built from a format string.
func (c *Collector) Pushf(loc Offset, format string, args ...any) {
	c.Push(Warning{Reason: fmt.Sprintf(format, args...), Location: loc})
}

// Warnings returns the accumulated warnings in the order they were pushed.
func (c *Collector) Warnings() []Warning {
	if c == nil {
		return nil
	}
	return c.warnings
}

// Result is the {result, optional error} shape used where partial output
// is recoverable: a grammar error for one selector in a list, or one
// declaration in a block, doesn't have to discard everything else parsed
// alongside it.
type Result[T any] struct {
	Value T
	Err   *Error
}

// Ok reports whether Err is nil.
func (r Result[T]) Ok() bool { return r.Err == nil }
