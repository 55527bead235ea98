package matching

import "fmt"

// UpstreamError indicates a dependency the comparison cannot do without
// (embedding service, job board) failed.
type UpstreamError struct {
	Service string
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
