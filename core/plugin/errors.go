package plugin

import "fmt"

// Invocation-point codes carried by Error. Callers match on these to
// learn which pipeline stage a plugin failed in.
const (
	CodeInitFailed            = "init-failed"
	CodeDestroyFailed         = "destroy-failed"
	CodeBeforeParseFailed     = "before-parse-failed"
	CodeAfterParseFailed      = "after-parse-failed"
	CodeKeyValueFailed        = "key-value-failed"
	CodeBlockStartFailed      = "block-start-failed"
	CodeBlockEndFailed        = "block-end-failed"
	CodeValueProcessingFailed = "value-processing-failed"
	CodeValidationFailed      = "validation-failed"
	CodeFormattingFailed      = "formatting-failed"
)

// Error wraps a failure raised inside a plugin invocation with the
// originating plugin's name and the invocation-point code, so callers
// can tell "plugin X failed during step Y" without parsing messages.
type Error struct {
	Plugin string
	Code   string
	Err    error
}

// Error returns the wrapped message.
func (e *Error) Error() string {
	return fmt.Sprintf("plugin %q: %s: %v", e.Plugin, e.Code, e.Err)
}

// Unwrap returns the underlying plugin failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr builds the uniform plugin-error shape.
func wrapErr(name, code string, err error) *Error {
	return &Error{Plugin: name, Code: code, Err: err}
}

// FormatUnavailableError reports a format request no registered
// formatter claims.
type FormatUnavailableError struct {
	Format string
}

// Error names the unavailable format tag.
func (e *FormatUnavailableError) Error() string {
	return fmt.Sprintf("no formatter registered for format %q", e.Format)
}
