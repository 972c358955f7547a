package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Action selects what the launcher does with a VM description
type Action string

const (
	ActionBoot    Action = "boot"
	ActionInstall Action = "install"
	ActionLive    Action = "live"
)

// Valid reports whether a is one of the recognized actions
func (a Action) Valid() bool {
	switch a {
	case ActionBoot, ActionInstall, ActionLive:
		return true
	}
	return false
}

// VMConfig represents a validated virtual machine description
type VMConfig struct {
	Action Action `yaml:"action"`
	Name   string `yaml:"name"`
	Cores  int    `yaml:"cores,omitempty"`
	RAM    int    `yaml:"ram,omitempty"`
	ISO    string `yaml:"iso,omitempty"`
	Disk   *Disk  `yaml:"disk,omitempty"`
}

// Disk represents a disk image attached to (or created for) the VM
type Disk struct {
	Type   string `yaml:"type"`
	Image  string `yaml:"image"`
	Size   int    `yaml:"size"`
	Device string `yaml:"device"`
}

// Settings represents the tool configuration loaded through viper
type Settings struct {
	Binaries        BinariesConfig `mapstructure:"binaries"`
	CheckExitStatus bool           `mapstructure:"check_exit_status"`
	Timeout         time.Duration  `mapstructure:"timeout"`
	Remote          RemoteConfig   `mapstructure:"remote"`
	Config          string         `mapstructure:"config"`
	Schema          string         `mapstructure:"schema"`
}

// BinariesConfig names the QEMU programs to invoke
type BinariesConfig struct {
	Image   string `mapstructure:"image"`
	Machine string `mapstructure:"machine"`
}

// RemoteConfig represents the SSH target used when commands run on another host
type RemoteConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	KeyPath  string `mapstructure:"key_path"`
}

// Enabled reports whether commands should run on a remote host
func (r RemoteConfig) Enabled() bool {
	return r.Host != ""
}

// Validate checks the fields each action depends on. Unknown actions are
// left for the launcher to reject.
func (c *VMConfig) Validate() error {
	var result *multierror.Error

	if c.Name == "" {
		result = multierror.Append(result, fmt.Errorf("name is required"))
	}
	if c.Cores < 0 {
		result = multierror.Append(result, fmt.Errorf("cores must be greater than 0"))
	}
	if c.RAM < 0 {
		result = multierror.Append(result, fmt.Errorf("ram must be greater than 0"))
	}

	switch c.Action {
	case ActionBoot:
		result = multierror.Append(result, c.validateDisk()...)
	case ActionInstall:
		if c.ISO == "" {
			result = multierror.Append(result, fmt.Errorf("iso is required for action %s", c.Action))
		}
		result = multierror.Append(result, c.validateDisk()...)
	case ActionLive:
		if c.ISO == "" {
			result = multierror.Append(result, fmt.Errorf("iso is required for action %s", c.Action))
		}
	}

	return result.ErrorOrNil()
}

func (c *VMConfig) validateDisk() []error {
	if c.Disk == nil {
		return []error{fmt.Errorf("disk is required for action %s", c.Action)}
	}

	var errs []error
	if c.Disk.Type == "" {
		errs = append(errs, fmt.Errorf("disk.type is required"))
	}
	if c.Disk.Image == "" {
		errs = append(errs, fmt.Errorf("disk.image is required"))
	}
	if c.Disk.Size <= 0 {
		errs = append(errs, fmt.Errorf("disk.size must be greater than 0"))
	}
	if c.Disk.Device == "" {
		errs = append(errs, fmt.Errorf("disk.device is required"))
	}
	return errs
}
