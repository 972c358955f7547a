// Package media inspects installation media before they are handed to QEMU.
package media

import (
	"fmt"
	"os"
	"strings"

	"github.com/kdomanski/iso9660"
)

// Label returns the ISO 9660 volume identifier of the image at path
func Label(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := iso9660.OpenImage(f)
	if err != nil {
		return "", fmt.Errorf("%s is not an ISO 9660 image: %w", path, err)
	}

	label, err := img.Label()
	if err != nil {
		return "", fmt.Errorf("failed to read volume label of %s: %w", path, err)
	}

	return strings.TrimSpace(label), nil
}
