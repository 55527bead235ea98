package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for MIME types with no extractor
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNoText is returned when a document yields no extractable text
	ErrNoText = errors.New("no extractable text")
	// ErrHTTPRequestFailed is returned when a job posting cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when a fetched page cannot be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// ExtractionError reports a document that could not be turned into text.
type ExtractionError struct {
	MIMEType string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to read %s: %s: %v", e.MIMEType, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to read %s: %s", e.MIMEType, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
