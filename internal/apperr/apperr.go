// Package apperr defines the error taxonomy shared across the orchestrator.
//
// Each boundary (config loading, user input, FFI calls, the run driver)
// returns errors wrapped with a Kind so that the top-level command can map
// them to an exit code and a one-line user-visible message without caring
// about the originating package.
package apperr

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an error by the boundary that produced it.
type Kind int

const (
	// KindUnknown is the zero value; treated as a generic failure.
	KindUnknown Kind = iota
	// KindConfig covers parse failures, missing files, unknown presets,
	// circular/misplaced Optionals, and typed-projection mismatches.
	KindConfig
	// KindInput covers stdin/stdout I/O failures and missing batch-mode defaults.
	KindInput
	// KindFFI covers library load failures and Core calls returning failure.
	KindFFI
	// KindRuntime covers connection failures, task append failures, and
	// user interrupts.
	KindRuntime
	// KindObserved marks a run that otherwise completed but during which
	// the Core emitted at least one error-class message.
	KindObserved
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInput:
		return "input"
	case KindFFI:
		return "ffi"
	case KindRuntime:
		return "runtime"
	case KindObserved:
		return "observed"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code associated with this error kind.
// All kinds are non-zero; callers that need the actual taxonomy should
// inspect Kind() rather than the exit code.
func (k Kind) ExitCode() int {
	if k == KindUnknown {
		return 1
	}
	return int(k) + 1
}

// Error is the concrete error type returned across component boundaries.
// The message/cause formatting and stack capture are delegated to
// pkg/errors rather than hand-rolled with fmt.Sprintf.
type Error struct {
	kind Kind
	err  error
}

// New creates an Error of the given kind with a formatted message and a
// captured stack trace.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, err: pkgerrors.Errorf(format, args...)}
}

// Wrap attaches a Kind to an existing error, preserving it for errors.Is/As
// and prefixing it with a formatted message (pkg/errors.Wrapf).
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: pkgerrors.Wrapf(err, format, args...)}
}

func (e *Error) Error() string { return e.err.Error() }

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error { return pkgerrors.Cause(e.err) }

// Kind returns the error's taxonomy classification.
func (e *Error) Kind() Kind { return e.kind }

// KindOf extracts the Kind of err, defaulting to KindUnknown when err is
// nil or not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

// Sentinel errors for conditions callers need to test for directly.
var (
	// ErrCircularDependency is returned when Optional siblings in a Value
	// object form a cycle.
	ErrCircularDependency = New(KindConfig, "circular dependency between optional fields")
	// ErrOptionalNotInObject is returned when an Optional value is resolved
	// outside of an enclosing Object.
	ErrOptionalNotInObject = New(KindConfig, "optional value is not a direct child of an object")
	// ErrDefaultNotSet is returned by UserInput.Value in batch mode when no
	// default is available.
	ErrDefaultNotSet = New(KindInput, "no default value set for batch mode")
	// ErrInterrupted is returned by the run driver's poll loop after a
	// signal sets the stop flag.
	ErrInterrupted = New(KindRuntime, "interrupted")
	// ErrObservedFailure is surfaced post-run when the sticky error flag was set.
	ErrObservedFailure = New(KindObserved, "some error occurred during the run")
)
