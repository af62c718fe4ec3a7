package helpers

import (
	"errors"
	"fmt"
	"sync/atomic"

	"k-stock-insight/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type KStockError struct {
	Message string
	Cause   error
}

func (e *KStockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *KStockError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As
type ConfigurationError struct{ KStockError }
type DatabaseError struct{ KStockError }

// TransportError means no HTTP response was received (dial failure, timeout,
// unreadable body).
type TransportError struct{ KStockError }

// NewTransportError wraps cause. The message is the cause's own text so it
// reads the same as the underlying network error.
func NewTransportError(cause error) *TransportError {
	return &TransportError{KStockError{Message: cause.Error(), Cause: cause}}
}

func (e *TransportError) Error() string { return e.Message }

// ApplicationError means a response arrived with a non-2xx status.
type ApplicationError struct {
	Status int
	Detail string // structured "detail" field of the body, empty if absent
	Body   []byte
}

func (e *ApplicationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// -----------------------------------------------------------------------------
// Normalization
// -----------------------------------------------------------------------------

// ErrorMessage maps an error to the text shown in an error slot: the
// backend's detail field when one was sent, the transport message otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Detail
		}
		return fmt.Sprintf("Request failed with status code %d", appErr.Status)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message
	}

	return err.Error()
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// ErrorHandler logs errors that are downgraded instead of returned.
type ErrorHandler struct {
	Logger     *logger.Logger
	errorCount atomic.Int64
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// ErrorCount returns the number of errors handled since the last reset.
func (e *ErrorHandler) ErrorCount() int64 {
	return e.errorCount.Load()
}

func (e *ErrorHandler) ResetErrorCount() {
	e.errorCount.Store(0)
}

// -----------------------------------------------------------------------------

// Handle logs err under context and reports whether there was one.
func (e *ErrorHandler) Handle(err error, context string) bool {
	if err == nil {
		return false
	}
	e.errorCount.Add(1)
	e.Logger.Error("Error in %s: %s", context, ErrorMessage(err))
	return true
}
