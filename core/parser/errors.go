package parser

import "fmt"

// StructuralError reports a malformed input line or an unterminated
// construct. It is always fatal to the parse and carries the line
// number and raw line text for diagnostics.
type StructuralError struct {
	Line int
	Text string
	Msg  string
}

// Error returns the diagnostic message.
func (e *StructuralError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func structuralf(line int, text, format string, args ...any) *StructuralError {
	return &StructuralError{Line: line, Text: text, Msg: fmt.Sprintf(format, args...)}
}
