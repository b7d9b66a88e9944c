package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures by how the pipeline must react to them
type ErrorType string

const (
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeCapture       ErrorType = "capture"
	ErrorTypeComposite     ErrorType = "composite"
	ErrorTypeProgressStore ErrorType = "progress_store"
	ErrorTypeConfig        ErrorType = "config"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Error is a classified pipeline error
type Error struct {
	Type    ErrorType
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Type, e.Op, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error wrapping err
func New(errorType ErrorType, op string, message string, err error) *Error {
	return &Error{
		Type:    errorType,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Input reports an unreadable or missing input file
func Input(op string, err error) *Error {
	return New(ErrorTypeInput, op, "", err)
}

// Capture reports a failure on one side of a pair
func Capture(op string, err error) *Error {
	return New(ErrorTypeCapture, op, "", err)
}

// Composite reports a decode, encode or write failure while building a comparison image
func Composite(op string, err error) *Error {
	return New(ErrorTypeComposite, op, "", err)
}

// ProgressStore reports a failure reading or appending the record log
func ProgressStore(op string, err error) *Error {
	return New(ErrorTypeProgressStore, op, "", err)
}

// Config reports an invalid configuration
func Config(op string, err error) *Error {
	return New(ErrorTypeConfig, op, "", err)
}

// IsFatal reports whether an error of the given type must abort the run.
// Capture failures are absorbed by a placeholder image.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeCapture:
		return false
	default:
		return true
	}
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown if err is not classified
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// Is reports whether err carries the given type anywhere in its chain
func Is(err error, errorType ErrorType) bool {
	return TypeOf(err) == errorType
}
