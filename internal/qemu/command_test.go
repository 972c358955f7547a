package qemu

import (
	"testing"

	"github.com/nikiskaarup/qlaunch/internal/config"
	"github.com/stretchr/testify/require"
)

func TestAddOption(t *testing.T) {
	c := newCommand("prog", "sub")
	c.AddOption("-a")
	c.AddOption("-b", "value")
	c.AddOption("-c", "")
	c.AddOption("bare")

	require.Equal(t, []string{"prog", "sub", "-a", "-b", "value", "-c", "bare"}, c.Build())
}

func TestBuildReturnsCopy(t *testing.T) {
	c := newCommand("prog")
	c.AddOption("-x", "1")

	first := c.Build()
	first[0] = "changed"

	require.Equal(t, []string{"prog", "-x", "1"}, c.Build())
}

func TestCommandString(t *testing.T) {
	c := newCommand("qemu-img", "create")
	c.AddOption("/tmp/my disk.img")

	require.Equal(t, `qemu-img create '/tmp/my disk.img'`, c.String())
}

func TestImageProps(t *testing.T) {
	img := NewImage("")
	img.Props(config.Disk{Type: "qcow2", Image: "/var/vm/disk.qcow2", Size: 2048, Device: "hda"})

	require.Equal(t, []string{"qemu-img", "create", "-f", "qcow2", "/var/vm/disk.qcow2", "2048m"}, img.Build())
}

func TestImageCustomBinary(t *testing.T) {
	img := NewImage("/opt/qemu/bin/qemu-img")
	img.Props(config.Disk{Type: "raw", Image: "d.raw", Size: 10})

	require.Equal(t, []string{"/opt/qemu/bin/qemu-img", "create", "-f", "raw", "d.raw", "10m"}, img.Build())
}

func TestMachineProps(t *testing.T) {
	disk := &config.Disk{Type: "qcow2", Image: "/vm/disk.qcow2", Size: 10, Device: "hda"}

	tests := []struct {
		name  string
		props MachineProps
		want  []string
	}{
		{
			name:  "empty",
			props: MachineProps{},
			want:  []string{"qemu-system-x86_64", "-enable-kvm"},
		},
		{
			name: "all options",
			props: MachineProps{
				Name:     "test",
				Cores:    2,
				RAM:      1024,
				CDROM:    "/tmp/x.iso",
				Disk:     disk,
				Network:  true,
				NoReboot: true,
			},
			want: []string{
				"qemu-system-x86_64", "-enable-kvm",
				"-name", "test",
				"-smp", "2",
				"-m", "1024m",
				"-cdrom", "/tmp/x.iso",
				"-hda", "/vm/disk.qcow2",
				"-net", "nic", "-net", "user",
				"-no-reboot",
			},
		},
		{
			name:  "disk device becomes flag",
			props: MachineProps{Disk: &config.Disk{Image: "/vm/b.img", Device: "hdb"}},
			want:  []string{"qemu-system-x86_64", "-enable-kvm", "-hdb", "/vm/b.img"},
		},
		{
			name:  "zero resources omitted",
			props: MachineProps{Name: "n", Cores: 0, RAM: 0, Network: false},
			want:  []string{"qemu-system-x86_64", "-enable-kvm", "-name", "n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine("")
			m.Props(tt.props)
			require.Equal(t, tt.want, m.Build())
		})
	}
}

func TestMachinePropsProgressive(t *testing.T) {
	m := NewMachine("")
	m.Props(MachineProps{Name: "test", Cores: 2, RAM: 1024, Network: true})
	m.Props(MachineProps{CDROM: "/tmp/x.iso", NoReboot: true})

	require.Equal(t, []string{
		"qemu-system-x86_64", "-enable-kvm",
		"-name", "test", "-smp", "2", "-m", "1024m",
		"-net", "nic", "-net", "user",
		"-cdrom", "/tmp/x.iso", "-no-reboot",
	}, m.Build())
}

func TestMachineBuildIdempotent(t *testing.T) {
	props := MachineProps{Name: "a", Cores: 4, RAM: 512, Network: true}

	m1 := NewMachine("")
	m1.Props(props)
	m2 := NewMachine("")
	m2.Props(props)

	require.Equal(t, m1.Build(), m2.Build())
	require.Equal(t, m1.Build(), m1.Build())
}
