package cmd

import (
	"context"

	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "qlaunch",
	Short: "QEMU/KVM virtual machine launcher",
	Long: `qlaunch boots, installs or live-runs a virtual machine described in a YAML file,
creating its disk image with qemu-img when an installation needs one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Cancelling ctx kills any running QEMU command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringP("config", "c", "config.yml", "virtual machine description file")
	flags.StringP("schema", "s", "", "JSON schema (YAML or JSON) for the description, built-in when empty")
	flags.Bool("check-exit", false, "fail when a QEMU command exits with a non-zero status")
	flags.Duration("timeout", 0, "maximum run time of each QEMU command (0 waits forever)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("schema", flags.Lookup("schema"))
	_ = viper.BindPFlag("check_exit_status", flags.Lookup("check-exit"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
}

func initConfig() {
	// Set up logging
	setupLogging()

	config.Configure(viper.GetViper())
	if err := config.Read(viper.GetViper()); err != nil {
		logrus.Fatalf("Error reading settings: %v", err)
	}
}

func setupLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}
