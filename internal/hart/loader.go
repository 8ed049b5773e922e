package hart

// loader.go loads guest and disk images from the host filesystem. Grounded
// on the shape of the teacher's internal/vm/loader.go Loader (a small
// struct wrapping a logger, one Load method, wrapped errors), adapted to
// RV64's flat-binary images: spec.md §6 names no hex object format, just a
// raw byte image placed at DRAM_BASE.

import (
	"errors"
	"fmt"
	"os"

	"github.com/rvsim/hart64/internal/log"
)

// ErrImageLoader wraps failures reading guest or disk images.
var ErrImageLoader = errors.New("image")

// Loader reads guest and disk images from files into byte slices ready to
// hand to NewBus.
type Loader struct {
	log *log.Logger
}

// NewLoader creates an image loader.
func NewLoader() *Loader {
	return &Loader{log: log.DefaultLogger()}
}

// LoadGuestImage reads the guest program image from path. The image is
// loaded starting at DramBase; it must fit within DramSize.
func (l *Loader) LoadGuestImage(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: guest image: %w", ErrImageLoader, err)
	}

	if len(image) > DramSize {
		return nil, fmt.Errorf("%w: guest image: %d bytes exceeds DRAM size %d", ErrImageLoader, len(image), DramSize)
	}

	l.log.Info("loaded guest image", "path", path, "bytes", len(image))

	return image, nil
}

// LoadDiskImage reads the disk image backing the virtio block device from
// path. A missing path is not an error: the device simply has no backing
// store.
func (l *Loader) LoadDiskImage(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	disk, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: disk image: %w", ErrImageLoader, err)
	}

	l.log.Info("loaded disk image", "path", path, "bytes", len(disk))

	return disk, nil
}
