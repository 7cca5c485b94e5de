package parser

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/solverlab/aspen/errors"
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax    ErrorKind = "syntax"    // Malformed grammar (careful parser, fatal for the line)
	ErrorKindAmbiguous ErrorKind = "ambiguous" // Fast parser cannot safely decompose (recoverable)
)

// ErrorSeverity indicates the severity level of a parser error
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// ParseError represents a structured parser error with metadata
type ParseError struct {
	Err         error         // Underlying sentinel (errors.ErrSyntax or errors.ErrAmbiguous)
	Kind        ErrorKind     // Error category
	Severity    ErrorSeverity // Error severity
	Message     string        // Human-readable message
	Line        string        // Offending solver output line
	Position    *Position     // Approximate position within Line (optional)
	Range       *Range        // Source span (optional)
	Suggestions []string      // Possible fixes
}

// ErrorContext selects the rendering style for a ParseError.
type ErrorContext int

const (
	ErrorContextTerminal ErrorContext = iota // colored, multi-line
	ErrorContextPlain                        // concise, for logs and JSON
)

// Error implements the error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates a context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

// formatPlainError creates a concise error for logs
func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Position != nil {
		msg += fmt.Sprintf(" (at column %d)", e.Position.Column)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates a rich colored error for the terminal
func (e *ParseError) formatTerminalError() string {
	var baseMsg string
	switch e.Severity {
	case SeverityWarning:
		baseMsg = pterm.Yellow(e.Message)
	default:
		baseMsg = pterm.Red(e.Message)
	}

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	if e.Line != "" {
		context += fmt.Sprintf("\n  %s %s", pterm.Yellow("Line:"), e.Line)
		if e.Position != nil {
			context += fmt.Sprintf("\n        %s^", strings.Repeat(" ", e.Position.Column))
		}
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  - %s", suggestion)
		}
	}

	return fmt.Sprintf("%s%s", baseMsg, context)
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsAmbiguous reports whether this error is the fast parser's recoverable
// ambiguity signal.
func (e *ParseError) IsAmbiguous() bool {
	return e.Kind == ErrorKindAmbiguous
}

// Builder pattern for constructing ParseErrors

// NewSyntaxError creates a fatal syntax error for one line
func NewSyntaxError(message string) *ParseError {
	return &ParseError{
		Err:      errors.ErrSyntax,
		Kind:     ErrorKindSyntax,
		Severity: SeverityError,
		Message:  message,
	}
}

// NewAmbiguousError creates the fast parser's recoverable ambiguity signal
func NewAmbiguousError(message string) *ParseError {
	return &ParseError{
		Err:      errors.ErrAmbiguous,
		Kind:     ErrorKindAmbiguous,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// WithLine attaches the offending solver output line
func (e *ParseError) WithLine(line string) *ParseError {
	e.Line = line
	return e
}

// WithOffset sets the approximate position from a byte offset into Line
func (e *ParseError) WithOffset(offset int) *ParseError {
	pos := positionAt(e.Line, offset)
	e.Position = &pos
	return e
}

// WithRange sets the source span
func (e *ParseError) WithRange(r Range) *ParseError {
	e.Range = &r
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}
