package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikiskaarup/qlaunch/cmd"
	"github.com/nikiskaarup/qlaunch/internal/vm"
	"github.com/sirupsen/logrus"
)

func main() {
	// QEMU runs in its own process group, so interrupts are forwarded through the context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		logrus.Errorf("Error: %v", err)
		os.Exit(vm.ExitCode(err))
	}
}
