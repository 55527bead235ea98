package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator failure into an *ErrValidation
// describing its first field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "required_without":
		message = "is required unless job_url is given"
	case "max":
		message = fmt.Sprintf("must be at most %s long", fe.Param())
	case "http_url":
		message = "must be an http(s) URL"
	default:
		message = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &ErrValidation{Field: fe.Field(), Message: message}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		extractionErr *ingestion.ExtractionError
		upstreamErr   *matching.UpstreamError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &extractionErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text returned to clients. Internal failures are
// not described beyond their status.
func publicMessage(err error, status int) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusGatewayTimeout:
		return "request timed out"
	default:
		return err.Error()
	}
}
