// Package diag implements the compiler's error taxonomy (spec.md §7):
// a flat set of error kinds, each carrying a source location (except
// IOError), formatted as human-readable diagnostics with a caret
// pointing at the offending column. Grounded on the teacher's
// CompilerError/Format pattern.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-arx/internal/lexer"
)

// Kind is one of the five fatal error categories of spec.md §7.
type Kind int

const (
	Lexical Kind = iota
	Parse
	Scope
	Lowering
	IO
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "LexicalError"
	case Parse:
		return "ParseError"
	case Scope:
		return "ScopeError"
	case Lowering:
		return "LoweringError"
	case IO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// Error is a single fatal compiler diagnostic. IOError has no
// meaningful Pos (it is the zero value) and Format omits the source
// line/caret for it, per spec.md §7.
type Error struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

// New creates a diagnostic not tied to a particular file's source text.
func New(kind Kind, pos lexer.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewIO creates an IOError, which carries no SourceLocation.
func NewIO(format string, args ...any) *Error {
	return &Error{Kind: IO, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches the file name and its full text, used to render
// the caret-annotated source line in Format.
func (e *Error) WithSource(file, source string) *Error {
	e.File = file
	e.Source = source
	return e
}

func (e *Error) Error() string {
	return e.Format()
}

// Format renders "<kind>: <message> at <file>:<line>:<col>" per
// spec.md §7, with a source-context line and caret when available.
func (e *Error) Format() string {
	if e.Kind == IO {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	file := e.File
	if file == "" {
		file = "<input>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s at %s:%d:%d", e.Kind, e.Message, file, e.Pos.Line, e.Pos.Col)

	if line := e.sourceLine(e.Pos.Line); line != "" {
		sb.WriteString("\n    ")
		sb.WriteString(line)
		sb.WriteString("\n    ")
		col := e.Pos.Col
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

func (e *Error) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll renders a sequence of diagnostics, one per line/block.
func FormatAll(errs []*Error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format()
	}
	return strings.Join(parts, "\n\n")
}
