package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/kballard/go-shellquote"
	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/nikiskaarup/qlaunch/internal/runner"
	"github.com/nikiskaarup/qlaunch/internal/vm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the QEMU commands a run would execute",
	Long:  "Check preconditions and print every command of a run without starting any process.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return planVM(cmd, settings, os.Stdout)
	},
}

func planVM(cmd *cobra.Command, settings *config.Settings, out io.Writer) error {
	vmConfig, err := config.LoadVM(settings.Config, settings.Schema)
	if err != nil {
		return err
	}

	recorder := &runner.Recorder{}
	_, checker := backend(settings)
	if err := vm.NewLauncher(recorder, checker, launcherOptions(settings)).Launch(cmd.Context(), vmConfig); err != nil {
		return err
	}

	fmt.Fprintf(out, "Virtual machine: %s (%s)\n\n", vmConfig.Name, vmConfig.Action)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Step\tCommand\n")
	fmt.Fprintf(w, "----\t-------\n")

	for i, argv := range recorder.Commands() {
		fmt.Fprintf(w, "%d\t%s\n", i+1, shellquote.Join(argv...))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logrus.Debug("Plan displayed successfully")
	return nil
}
