package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "QLAUNCH"

// Configure prepares v with defaults, search paths and environment overrides.
func Configure(v *viper.Viper) {
	setDefaults(v)

	v.SetConfigName("qlaunch")
	v.SetConfigType("yaml")
	v.AddConfigPath(getConfigHome())
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Read loads the settings file if one exists. A missing file is not an error.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Debugf("Settings file not found, using defaults")
			return nil
		}
		return fmt.Errorf("error reading settings file: %w", err)
	}
	logrus.Debugf("Loaded settings from %s", v.ConfigFileUsed())
	return nil
}

// Load decodes the tool settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error parsing settings: %w", err)
	}

	s.Remote.KeyPath = expandPath(s.Remote.KeyPath)

	if s.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", s.Timeout)
	}

	logrus.Debugf("Using image tool %s and machine tool %s", s.Binaries.Image, s.Binaries.Machine)
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	// QEMU binaries
	v.SetDefault("binaries.image", "qemu-img")
	v.SetDefault("binaries.machine", "qemu-system-x86_64")

	// Execution policy
	v.SetDefault("check_exit_status", false)
	v.SetDefault("timeout", "0s")

	// Remote execution
	v.SetDefault("remote.host", "")
	v.SetDefault("remote.port", 22)
	v.SetDefault("remote.username", "root")
	v.SetDefault("remote.key_path", "~/.ssh/id_ed25519")

	// VM description
	v.SetDefault("config", "config.yml")
	v.SetDefault("schema", "")
}

func getConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qlaunch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "$HOME/.config/qlaunch"
	}
	return filepath.Join(home, ".config", "qlaunch")
}

func expandPath(path string) string {
	if len(path) > 1 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
