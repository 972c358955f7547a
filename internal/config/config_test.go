package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v := viper.New()
	Configure(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	v := newViper(t)
	require.NoError(t, Read(v))

	s, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "qemu-img", s.Binaries.Image)
	require.Equal(t, "qemu-system-x86_64", s.Binaries.Machine)
	require.False(t, s.CheckExitStatus)
	require.Zero(t, s.Timeout)
	require.False(t, s.Remote.Enabled())
	require.Equal(t, 22, s.Remote.Port)
	require.Equal(t, "config.yml", s.Config)
	require.Empty(t, s.Schema)
}

func TestLoadSettingsFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "qlaunch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qlaunch.yaml"), []byte(`
binaries:
  machine: /usr/local/bin/qemu-system-x86_64
check_exit_status: true
timeout: 90s
remote:
  host: hv01
  key_path: /keys/id
`), 0644))

	v := viper.New()
	Configure(v)
	require.NoError(t, Read(v))

	s, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "/usr/local/bin/qemu-system-x86_64", s.Binaries.Machine)
	require.Equal(t, "qemu-img", s.Binaries.Image)
	require.True(t, s.CheckExitStatus)
	require.Equal(t, 90*time.Second, s.Timeout)
	require.True(t, s.Remote.Enabled())
	require.Equal(t, "hv01", s.Remote.Host)
	require.Equal(t, "/keys/id", s.Remote.KeyPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	v := newViper(t)
	t.Setenv("QLAUNCH_REMOTE_HOST", "hv02")
	t.Setenv("QLAUNCH_TIMEOUT", "5m")

	s, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "hv02", s.Remote.Host)
	require.Equal(t, 5*time.Minute, s.Timeout)
}

func TestLoadNegativeTimeout(t *testing.T) {
	v := newViper(t)
	v.Set("timeout", "-1s")

	_, err := Load(v)
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, ".ssh/id"), expandPath("~/.ssh/id"))
	require.Equal(t, "/abs/id", expandPath("/abs/id"))
}
