package nodes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Error codes reported in item results and tool errors.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeFirecrawlError = "FIRECRAWL_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeNotFound       = "NOT_FOUND"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

// Error returns the message alone; the code travels separately in item results.
func (e *CodedError) Error() string {
	return e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrorCode returns the code carried by err, or FIRECRAWL_ERROR.
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeFirecrawlError
}

// WrapFirecrawlError converts a firecrawl.APIError or other client error to a
// coded error. Coded errors pass through unchanged.
func WrapFirecrawlError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	var apiErr *firecrawl.APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		coded = &CodedError{Code: codeForStatus(apiErr.StatusCode), Message: err.Error(), Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out: " + err.Error(), Cause: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out: " + err.Error(), Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeFirecrawlError, Message: err.Error(), Cause: err}
	}

	slog.Warn("firecrawl API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusPaymentRequired:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeFirecrawlError
	}
}

// ItemError aborts a batch when an item fails and failures are not continued.
type ItemError struct {
	Index int
	Node  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s item %d: %v", e.Node, e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
