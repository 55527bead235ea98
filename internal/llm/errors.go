package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// APIError is a failed call to the model provider.
type APIError struct {
	Op      string // "generate" or "embed"
	Model   string
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm %s (%s): %s: %v", e.Op, e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm %s (%s): %s", e.Op, e.Model, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// errEmptyResponse marks a response with nothing usable in it.
var errEmptyResponse = errors.New("empty response")

// isTransient reports whether a provider error is worth retrying: rate
// limiting, server errors and empty responses. Cancellation never is.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, errEmptyResponse) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return false
}
