//go:build unix

package runner

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts cmd in its own process group so that cancelling
// the context also kills anything the command forked.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay
}
