package vm

import (
	"errors"
	"fmt"

	"github.com/nikiskaarup/qlaunch/internal/config"
)

// Error kinds. Every launch error wraps exactly one of these.
var (
	ErrInvalidAction            = errors.New("invalid action")
	ErrMissingDisk              = errors.New("disk image not found")
	ErrMissingMedia             = errors.New("ISO file not found")
	ErrConfigurationUnavailable = config.ErrUnavailable
	ErrExternalCommandFailed    = errors.New("external command failed")
)

// Error carries the kind of a launch failure and the value that caused it.
type Error struct {
	Kind  error
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Value != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode maps err to the process exit status reported by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidAction):
		return 2
	case errors.Is(err, ErrMissingDisk):
		return 3
	case errors.Is(err, ErrMissingMedia):
		return 4
	case errors.Is(err, ErrConfigurationUnavailable):
		return 5
	case errors.Is(err, ErrExternalCommandFailed):
		return 6
	}
	return 1
}
