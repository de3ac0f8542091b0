package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/vox-sh/vox/internal/config"
)

// ErrorKind defines the category of pipeline errors.
type ErrorKind string

const (
	// NetworkError covers connectivity failures and request timeouts.
	NetworkError ErrorKind = "network_error"
	// ProviderError covers non-success HTTP statuses from the API.
	ProviderError ErrorKind = "provider_error"
	// ParseError covers unexpected response shapes.
	ParseError ErrorKind = "parse_error"
	// EmptyResponseError means the model returned no usable command.
	EmptyResponseError ErrorKind = "empty_response_error"
	// ExecutionError means the command interpreter could not be spawned.
	ExecutionError ErrorKind = "execution_error"
)

// PipelineError is the terminal error for one invocation. None of the kinds
// are retried automatically; the user re-invokes the tool to try again.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %s)", e.Kind, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to work correctly.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NewPipelineError creates a new pipeline error.
func NewPipelineError(kind ErrorKind, message string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Cause: cause}
}

// WrapError wraps an error without double-wrapping existing pipeline errors.
func WrapError(kind ErrorKind, message string, cause error) *PipelineError {
	var pe *PipelineError
	if errors.As(cause, &pe) {
		return pe
	}
	return NewPipelineError(kind, message, cause)
}

// KindOf extracts the error kind, or "" for non-pipeline errors.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return config.ExitSuccess
	}
	switch KindOf(err) {
	case NetworkError:
		return config.ExitNetworkError
	case ProviderError:
		return config.ExitProviderError
	case ParseError:
		return config.ExitParseError
	case EmptyResponseError:
		return config.ExitEmptyResponse
	case ExecutionError:
		return config.ExitExecutionError
	default:
		return config.ExitGenericError
	}
}

// ClassifyTransportError maps a failed http.Client.Do into the taxonomy.
// Timeouts and cancellations count as network failures.
func ClassifyTransportError(err error) *PipelineError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewPipelineError(NetworkError, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return NewPipelineError(NetworkError, "request cancelled", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewPipelineError(NetworkError, "request timed out", err)
	}
	return NewPipelineError(NetworkError, "cannot reach the API, check your connection", err)
}
