package core

import "fmt"

// ErrorKind classifies the failures sugar can report.
type ErrorKind string

const (
	ErrBackendCommand      ErrorKind = "backend-command"
	ErrInterrupted         ErrorKind = "interrupted"
	ErrConfigFileNotFound  ErrorKind = "config-file-not-found"
	ErrBackendNotSupported ErrorKind = "backend-not-supported"
	ErrInvalidParameter    ErrorKind = "invalid-parameter"
	ErrMissingParameter    ErrorKind = "missing-parameter"
	ErrInvalidConfig       ErrorKind = "invalid-configuration"
	ErrNotImplemented      ErrorKind = "not-implemented"
)

// exitCodes maps each kind to the process exit status reported for it.
var exitCodes = map[ErrorKind]int{
	ErrBackendCommand:      1,
	ErrInterrupted:         2,
	ErrConfigFileNotFound:  3,
	ErrBackendNotSupported: 4,
	ErrInvalidParameter:    6,
	ErrMissingParameter:    7,
	ErrInvalidConfig:       8,
	ErrNotImplemented:      9,
}

// Error is a classified sugar failure. The top-level handler in cmd/sugar
// picks the exit status from the kind; nothing below it calls os.Exit.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ExitCode returns the process exit status for the error's kind.
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// NewError creates a classified error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
