package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the virtual machine description",
	Long:  "Check the description against its schema and the fields its action requires.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return validateConfig(settings, os.Stdout)
	},
}

func validateConfig(settings *config.Settings, out io.Writer) error {
	cfg, err := config.LoadVM(settings.Config, settings.Schema)
	if err != nil {
		return fmt.Errorf("configuration file has errors: %w", err)
	}

	if !cfg.Action.Valid() {
		return fmt.Errorf("configuration file has errors: invalid action %s", cfg.Action)
	}

	fmt.Fprintln(out, "✓ Configuration is valid")
	fmt.Fprintf(out, "✓ Virtual machine: %s\n", cfg.Name)
	fmt.Fprintf(out, "✓ Action: %s\n", cfg.Action)

	if cfg.Cores > 0 {
		fmt.Fprintf(out, "  - cores: %d\n", cfg.Cores)
	}
	if cfg.RAM > 0 {
		fmt.Fprintf(out, "  - ram: %d MiB\n", cfg.RAM)
	}
	if cfg.ISO != "" {
		fmt.Fprintf(out, "  - iso: %s\n", cfg.ISO)
	}
	if cfg.Disk != nil {
		fmt.Fprintf(out, "  - disk: %s (%s, %d MiB, %s)\n", cfg.Disk.Image, cfg.Disk.Type, cfg.Disk.Size, cfg.Disk.Device)
	}

	return nil
}
