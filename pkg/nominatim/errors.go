package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError represents an error that occurred while communicating with
// the geocoding service, with information to help users recover.
type APIError struct {
	Service     string // The API service name
	StatusCode  int    // HTTP status code, 0 for transport failures
	Message     string // Error message
	Recoverable bool   // Whether retrying later may succeed
	Guidance    string // Guidance for users on how to recover
	Err         error  // Underlying transport error, if any
}

// Common error guidance messages
const (
	GuidanceRateLimit    = "Please try again in a few seconds."
	GuidanceTimeout      = "Check your internet connection and try again."
	GuidanceGeneral      = "Please try again later or modify your request parameters."
	GuidanceNetworkError = "Check your internet connection and try again."
	GuidanceDataError    = "The data received was incomplete or malformed."
)

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API error: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Service, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout rather than an error
// returned by the service.
func (e *APIError) Timeout() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusGatewayTimeout {
		return true
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// newStatusError creates an APIError with guidance inferred from the status code.
func newStatusError(statusCode int, message string) *APIError {
	var guidance string
	switch statusCode {
	case http.StatusTooManyRequests:
		guidance = "Rate limit exceeded. " + GuidanceRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		guidance = "The request timed out. " + GuidanceTimeout
	case http.StatusBadRequest:
		guidance = "The request was invalid. Check your parameters and try again."
	case http.StatusServiceUnavailable:
		guidance = "The service is temporarily unavailable. Please try again later."
	default:
		guidance = GuidanceGeneral
	}

	return &APIError{
		Service:     serviceName,
		StatusCode:  statusCode,
		Message:     message,
		Recoverable: statusCode != http.StatusBadRequest,
		Guidance:    guidance,
	}
}

func newTransportError(err error) *APIError {
	return &APIError{
		Service:     serviceName,
		Message:     err.Error(),
		Recoverable: true,
		Guidance:    GuidanceNetworkError,
		Err:         err,
	}
}
