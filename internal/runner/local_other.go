//go:build !unix

package runner

import "os/exec"

func killProcessGroup(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
}
