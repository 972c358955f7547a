// Package runner spawns external commands and checks host paths.
package runner

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Argv []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", shellquote.Join(e.Argv...), e.Code)
}
