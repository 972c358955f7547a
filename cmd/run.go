package cmd

import (
	"fmt"

	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/nikiskaarup/qlaunch/internal/runner"
	"github.com/nikiskaarup/qlaunch/internal/ssh"
	"github.com/nikiskaarup/qlaunch/internal/vm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the action of a virtual machine description",
	Long: `Boot, install or live-run the virtual machine described by --config.
An install creates the disk image first when it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return runVM(cmd, settings)
	},
}

func runVM(cmd *cobra.Command, settings *config.Settings) error {
	vmConfig, err := config.LoadVM(settings.Config, settings.Schema)
	if err != nil {
		return err
	}

	r, checker := backend(settings)
	launcher := vm.NewLauncher(r, checker, launcherOptions(settings))

	if err := launcher.Launch(cmd.Context(), vmConfig); err != nil {
		return err
	}

	logrus.Infof("Virtual machine %s exited", vmConfig.Name)
	return nil
}

// backend picks where commands run and where paths are checked
func backend(settings *config.Settings) (vm.Runner, vm.Checker) {
	if settings.Remote.Enabled() {
		logrus.Infof("Running QEMU on %s@%s", settings.Remote.Username, settings.Remote.Host)
		client := ssh.NewClient(
			settings.Remote.Host,
			settings.Remote.Port,
			settings.Remote.Username,
			settings.Remote.KeyPath,
		)
		return client, client
	}
	return runner.Local{}, runner.Local{}
}

func launcherOptions(settings *config.Settings) vm.Options {
	return vm.Options{
		ImageBinary:     settings.Binaries.Image,
		MachineBinary:   settings.Binaries.Machine,
		CheckExitStatus: settings.CheckExitStatus,
		Timeout:         settings.Timeout,
		// media can only be opened when it lives on this host
		InspectMedia: !settings.Remote.Enabled(),
	}
}
