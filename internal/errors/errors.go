// Package errors defines the coded errors reported at the CLI surface.
//
// The parsing pipeline itself never fails: unrecognized input lines are
// dropped, unresolved references are ignored. Errors in this package
// cover the edges where the tool meets the outside world, such as
// missing files, unwritable outputs and malformed export bundles.
package errors

import "fmt"

// ErrorCode represents stable error codes surfaced to users and scripts.
type ErrorCode string

const (
	// FileNotFound indicates a spec file or bundle path that does not exist.
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// InvalidArgument indicates a flag or positional argument that cannot be used.
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// WriteFailed indicates an output file that could not be written.
	WriteFailed ErrorCode = "WRITE_FAILED"
	// InvalidBundle indicates an export bundle that cannot be decoded.
	InvalidBundle ErrorCode = "INVALID_BUNDLE"
	// InternalError indicates an unexpected failure.
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType categorizes suggested fixes.
type FixActionType string

const (
	// RunCommand suggests running a shell command.
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests consulting documentation.
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error.
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// Error is an error with a stable code, a human-readable message and
// optional suggested fixes. The wrapped cause is preserved for
// errors.Is and errors.As.
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates an Error with the given code, message and optional cause.
func New(code ErrorCode, message string, cause error, fixes ...FixAction) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		SuggestedFixes: fixes,
		cause:          cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf walks err's chain and returns the code of the first *Error it
// finds, or the empty string when the chain carries none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if coded, ok := err.(*Error); ok {
			return coded.Code
		}
		wrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = wrapper.Unwrap()
	}
	return ""
}
