package qemu

import (
	"fmt"
	"strconv"

	"github.com/nikiskaarup/qlaunch/internal/config"
)

// DefaultMachineBinary is the emulator used when none is configured
const DefaultMachineBinary = "qemu-system-x86_64"

// Machine builds a "start virtual machine" invocation
type Machine struct {
	Command
}

// MachineProps enumerates every option Machine.Props understands. Zero
// values are left off the command line.
type MachineProps struct {
	Name     string
	Cores    int
	RAM      int // megabytes
	CDROM    string
	Disk     *config.Disk
	Network  bool
	NoReboot bool
}

// NewMachine starts a `<binary> -enable-kvm` invocation
func NewMachine(binary string) *Machine {
	if binary == "" {
		binary = DefaultMachineBinary
	}
	return &Machine{Command: newCommand(binary, "-enable-kvm")}
}

// Props appends the options set in p. It may be called several times on the
// same Machine to add options progressively.
func (m *Machine) Props(p MachineProps) {
	if p.Name != "" {
		m.AddOption("-name", p.Name)
	}
	if p.Cores > 0 {
		m.AddOption("-smp", strconv.Itoa(p.Cores))
	}
	if p.RAM > 0 {
		m.AddOption("-m", fmt.Sprintf("%dm", p.RAM))
	}
	if p.CDROM != "" {
		m.AddOption("-cdrom", p.CDROM)
	}
	if p.Disk != nil {
		m.AddOption("-"+p.Disk.Device, p.Disk.Image)
	}
	if p.Network {
		m.AddOption("-net", "nic")
		m.AddOption("-net", "user")
	}
	if p.NoReboot {
		m.AddOption("-no-reboot")
	}
}
