package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// waitDelay bounds how long Run waits for output after a command is killed
const waitDelay = 5 * time.Second

// Local runs commands and checks paths on this host
type Local struct{}

// Run spawns argv[0] with the remaining tokens as arguments and waits for it
// to exit. Standard output is discarded.
func (Local) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr
	killProcessGroup(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			logrus.Debugf("Command failed: %s %v: %v", argv[0], argv[1:], err)
			return &ExitError{Argv: argv, Code: exitErr.ExitCode()}
		}
		if ctx.Err() != nil {
			return fmt.Errorf("command %s interrupted: %w", argv[0], ctx.Err())
		}
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return nil
}

// Exists reports whether path is present on this host
func (Local) Exists(_ context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
