package parsing

import (
	"fmt"
	"unicode/utf8"
)

const maxSnippetRunes = 80

// ParseError reports a model response that could not be read as a skill list.
// Snippet carries the start of the offending response.
type ParseError struct {
	Message string
	Snippet string
	Cause   error
}

func newParseError(message, response string, cause error) *ParseError {
	return &ParseError{Message: message, Snippet: snippet(response), Cause: cause}
}

func (e *ParseError) Error() string {
	msg := "parse error: " + e.Message
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (response %q)", e.Snippet)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= maxSnippetRunes {
		return s
	}
	return string([]rune(s)[:maxSnippetRunes]) + "..."
}
