package engine

import (
	"errors"
	"fmt"
)

// ErrInnerViewUnavailable is returned for ViewInner when no inner-view
// generator has been configured.
var ErrInnerViewUnavailable = errors.New("inner view generator not configured")

// RuntimeError is an engine-level failure that is not a translation error.
// Translation errors are returned as *compiler.CompileError unchanged.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RunID identifies the affected run, if one was assigned.
	RunID string

	// Source names the input document (batch runs).
	Source string

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInnerView indicates the inner-view collaborator failed or is absent.
	ErrCodeInnerView RuntimeErrorCode = "INNER_VIEW"

	// ErrCodeUnknownView indicates a view other than outer or inner.
	ErrCodeUnknownView RuntimeErrorCode = "UNKNOWN_VIEW"

	// ErrCodeCancelled indicates a batch document was not started because
	// the context was done.
	ErrCodeCancelled RuntimeErrorCode = "CANCELLED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s (source=%s)", msg, e.Source)
	}
	if e.RunID != "" {
		return fmt.Sprintf("%s (run=%s)", msg, e.RunID)
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsInnerViewUnavailable reports whether err means no inner-view generator
// is configured. Uses errors.Is to handle wrapped errors.
func IsInnerViewUnavailable(err error) bool {
	return errors.Is(err, ErrInnerViewUnavailable)
}

// IsCancelled reports whether err is a batch cancellation.
func IsCancelled(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeCancelled
	}
	return false
}
