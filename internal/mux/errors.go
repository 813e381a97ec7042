package mux

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an operation failed.
type ErrorKind int

const (
	// KindLaunchFailed: tmux could not be started or its output not read.
	KindLaunchFailed ErrorKind = iota + 1
	// KindCommandFailed: tmux ran and exited non-zero.
	KindCommandFailed
	// KindDecodeFailed: tmux succeeded but printed a line we cannot decode.
	KindDecodeFailed
	// KindValidationFailed: the call was rejected before tmux was launched.
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindLaunchFailed:
		return "launch failed"
	case KindCommandFailed:
		return "command failed"
	case KindDecodeFailed:
		return "decode failed"
	case KindValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrLaunchFailed     = errors.New("launch failed")
	ErrCommandFailed    = errors.New("command failed")
	ErrDecodeFailed     = errors.New("decode failed")
	ErrValidationFailed = errors.New("validation failed")

	// The following refine ErrCommandFailed by inspecting tmux's stderr.
	ErrNoServer        = errors.New("no tmux server running")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// Error carries the diagnostic context of a failed operation.
type Error struct {
	Kind   ErrorKind
	Op     string // e.g. "list-windows"
	Target string // resolved tmux target, empty for server-wide operations
	Line   string // offending output line (KindDecodeFailed)
	Stdout string
	Stderr string
	// ExitCode is tmux's exit status (KindCommandFailed).
	ExitCode int
	// Err is the underlying cause: the platform error for KindLaunchFailed,
	// the *model.DecodeError for KindDecodeFailed.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("tmux ")
	b.WriteString(e.Op)
	if e.Target != "" {
		fmt.Fprintf(&b, " %q", e.Target)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case KindCommandFailed:
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
		if msg := strings.TrimSpace(e.Stderr); msg != "" {
			b.WriteString(": ")
			b.WriteString(msg)
		}
	default:
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels and, for command failures, the stderr-derived
// sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLaunchFailed:
		return e.Kind == KindLaunchFailed
	case ErrCommandFailed:
		return e.Kind == KindCommandFailed
	case ErrDecodeFailed:
		return e.Kind == KindDecodeFailed
	case ErrValidationFailed:
		return e.Kind == KindValidationFailed
	case ErrNoServer:
		return e.Kind == KindCommandFailed && stderrHas(e.Stderr,
			"no server running", "error connecting to", "server exited unexpectedly")
	case ErrSessionExists:
		return e.Kind == KindCommandFailed && stderrHas(e.Stderr, "duplicate session")
	case ErrSessionNotFound:
		return e.Kind == KindCommandFailed && stderrHas(e.Stderr,
			"session not found", "can't find session")
	}
	return false
}

// KindOf returns the kind of the *Error wrapped in err, or 0 when err is nil
// or not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func stderrHas(stderr string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(stderr, n) {
			return true
		}
	}
	return false
}

func validationError(op, target, format string, args ...any) *Error {
	return &Error{
		Kind:   KindValidationFailed,
		Op:     op,
		Target: target,
		Err:    fmt.Errorf(format, args...),
	}
}
