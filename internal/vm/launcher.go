// Package vm decides which QEMU commands a VM description needs and runs
// them in order.
package vm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/nikiskaarup/qlaunch/internal/media"
	"github.com/nikiskaarup/qlaunch/internal/qemu"
	"github.com/nikiskaarup/qlaunch/internal/runner"
	"github.com/sirupsen/logrus"
)

// Runner spawns one external command and blocks until it exits
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// Checker reports whether a path exists where the commands will run
type Checker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// Options tune how the launcher builds and runs commands
type Options struct {
	ImageBinary     string
	MachineBinary   string
	CheckExitStatus bool          // surface non-zero exits as ErrExternalCommandFailed
	Timeout         time.Duration // per command; zero waits forever
	InspectMedia    bool          // log the volume label of installation media
}

// Launcher runs a single VM description to completion
type Launcher struct {
	runner  Runner
	checker Checker
	opts    Options
}

// NewLauncher creates a launcher that spawns through r and checks paths through c
func NewLauncher(r Runner, c Checker, opts Options) *Launcher {
	return &Launcher{
		runner:  r,
		checker: c,
		opts:    opts,
	}
}

// Launch checks the preconditions of cfg.Action and runs the commands it
// needs. Nothing is spawned when a precondition fails.
func (l *Launcher) Launch(ctx context.Context, cfg *config.VMConfig) error {
	if cfg == nil {
		return &Error{Kind: ErrConfigurationUnavailable}
	}
	if !cfg.Action.Valid() {
		return &Error{Kind: ErrInvalidAction, Value: string(cfg.Action)}
	}

	log := logrus.WithFields(logrus.Fields{
		"run":    uuid.NewString(),
		"vm":     cfg.Name,
		"action": cfg.Action,
	})
	log.Info("Launching virtual machine")

	machine := qemu.NewMachine(l.opts.MachineBinary)
	machine.Props(qemu.MachineProps{
		Name:    cfg.Name,
		Cores:   cfg.Cores,
		RAM:     cfg.RAM,
		Network: true,
	})

	switch cfg.Action {
	case config.ActionBoot:
		return l.boot(ctx, log, machine, cfg)
	case config.ActionInstall:
		return l.install(ctx, log, machine, cfg)
	default:
		return l.live(ctx, log, machine, cfg)
	}
}

func (l *Launcher) boot(ctx context.Context, log *logrus.Entry, machine *qemu.Machine, cfg *config.VMConfig) error {
	if err := l.requireDisk(ctx, log, cfg); err != nil {
		return err
	}

	machine.Props(qemu.MachineProps{Disk: cfg.Disk})
	return l.run(ctx, log, &machine.Command)
}

func (l *Launcher) install(ctx context.Context, log *logrus.Entry, machine *qemu.Machine, cfg *config.VMConfig) error {
	if err := l.requireMedia(ctx, log, cfg); err != nil {
		return err
	}
	if cfg.Disk == nil {
		return &Error{Kind: ErrMissingDisk}
	}

	exists, err := l.exists(ctx, log, cfg.Disk.Image)
	if err != nil {
		return err
	}
	if !exists {
		log.Infof("Creating %dm %s disk image %s", cfg.Disk.Size, cfg.Disk.Type, cfg.Disk.Image)
		image := qemu.NewImage(l.opts.ImageBinary)
		image.Props(*cfg.Disk)
		if err := l.run(ctx, log, &image.Command); err != nil {
			return err
		}
	}

	machine.Props(qemu.MachineProps{
		CDROM:    cfg.ISO,
		Disk:     cfg.Disk,
		NoReboot: true,
	})
	return l.run(ctx, log, &machine.Command)
}

func (l *Launcher) live(ctx context.Context, log *logrus.Entry, machine *qemu.Machine, cfg *config.VMConfig) error {
	if err := l.requireMedia(ctx, log, cfg); err != nil {
		return err
	}

	machine.Props(qemu.MachineProps{
		CDROM:    cfg.ISO,
		NoReboot: true,
	})
	return l.run(ctx, log, &machine.Command)
}

func (l *Launcher) requireDisk(ctx context.Context, log *logrus.Entry, cfg *config.VMConfig) error {
	if cfg.Disk == nil {
		return &Error{Kind: ErrMissingDisk}
	}

	exists, err := l.exists(ctx, log, cfg.Disk.Image)
	if err != nil {
		return err
	}
	if !exists {
		return &Error{Kind: ErrMissingDisk, Value: cfg.Disk.Image}
	}
	return nil
}

func (l *Launcher) requireMedia(ctx context.Context, log *logrus.Entry, cfg *config.VMConfig) error {
	exists, err := l.exists(ctx, log, cfg.ISO)
	if err != nil {
		return err
	}
	if !exists {
		return &Error{Kind: ErrMissingMedia, Value: cfg.ISO}
	}

	if l.opts.InspectMedia {
		label, err := media.Label(cfg.ISO)
		if err != nil {
			log.Warnf("Could not inspect installation media: %v", err)
		} else {
			log.Infof("Installation media %s (volume %q)", cfg.ISO, label)
		}
	}
	return nil
}

func (l *Launcher) exists(ctx context.Context, log *logrus.Entry, path string) (bool, error) {
	exists, err := l.checker.Exists(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	log.Debugf("Path %q exists: %t", path, exists)
	return exists, nil
}

// run executes the finished command. Non-zero exits are only reported as
// errors when CheckExitStatus is set.
func (l *Launcher) run(ctx context.Context, log *logrus.Entry, cmd *qemu.Command) error {
	argv := cmd.Build()
	log.Infof("Running %s", cmd)

	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	err := l.runner.Run(ctx, argv)
	if err == nil {
		return nil
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		if !l.opts.CheckExitStatus {
			log.Warnf("%v, continuing", exitErr)
			return nil
		}
		return &Error{Kind: ErrExternalCommandFailed, Value: argv[0], Err: err}
	}
	return fmt.Errorf("failed to run %s: %w", argv[0], err)
}
