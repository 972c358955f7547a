package qemu

import (
	"fmt"

	"github.com/nikiskaarup/qlaunch/internal/config"
)

// DefaultImageBinary is the disk image tool used when none is configured
const DefaultImageBinary = "qemu-img"

// Image builds a "create disk image" invocation
type Image struct {
	Command
}

// NewImage starts a `<binary> create` invocation
func NewImage(binary string) *Image {
	if binary == "" {
		binary = DefaultImageBinary
	}
	return &Image{Command: newCommand(binary, "create")}
}

// Props appends the format, target path and size (in megabytes) of disk.
func (i *Image) Props(disk config.Disk) {
	i.AddOption("-f", disk.Type)
	i.AddOption(disk.Image)
	i.AddOption(fmt.Sprintf("%dm", disk.Size))
}
