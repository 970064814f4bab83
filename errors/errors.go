package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// PlatformError extends the standard error interface with structured information
// for consistent error handling.
//
// PlatformError provides error codes for categorization, classification for
// retry logic, contextual metadata, and compatibility with standard library
// error handling (errors.Is, errors.As, errors.Unwrap).
type PlatformError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	// Returns nil if this error does not wrap another error.
	Unwrap() error
}

// platformError is the only PlatformError implementation; values are built
// through the package constructors.
type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error renders "[CODE] message", followed by ": cause" when a cause other
// than ErrContract is wrapped and " (ERRNO)" when FromOS recorded a symbolic
// errno name.
func (e *platformError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)
	if e.cause != nil && e.cause != ErrContract {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	if sym, ok := e.context["errno"].(string); ok {
		fmt.Fprintf(&b, " (%s)", sym)
	}
	return b.String()
}

func (e *platformError) Code() ErrorCode                     { return e.code }
func (e *platformError) Classification() ErrorClassification { return e.classification }
func (e *platformError) Message() string                     { return e.message }
func (e *platformError) Unwrap() error                       { return e.cause }

// Context returns a copy of the context map, or nil if none was attached.
func (e *platformError) Context() map[string]interface{} {
	return copyContext(e.context)
}

// ErrContract is wrapped by every error that reports a caller contract
// violation: a closed handle, an unknown option string, an invalid mode or
// attribute key. Those errors point at the offending argument rather than at
// the filesystem.
//
//	if errors.Is(err, errors.ErrContract) {
//	    // programming error, not an I/O failure
//	}
var ErrContract = stderrors.New("contract violation")

// Contract creates an INVALID_INPUT error naming the offending argument.
func Contract(arg, format string, args ...interface{}) PlatformError {
	return WithContext(Wrapf(ErrContract, CodeInvalidInput, format, args...), "argument", arg)
}

// Closed creates the error returned when a closed handle is used.
// The kind names the handle type, e.g. "file" or "directory".
func Closed(kind string) PlatformError {
	return Wrapf(ErrContract, CodeClosed, "attempt to use a closed %s", kind)
}

// IsContract reports whether err is a caller contract violation.
func IsContract(err error) bool {
	return stderrors.Is(err, ErrContract)
}
