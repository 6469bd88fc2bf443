//go:build linux || darwin

package region

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

func mapRegion(size int) (*Region, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "region: mmap %d bytes", size)
	}
	return &Region{data: data, mapped: true}, nil
}

func unmapRegion(r *Region) error {
	if err := unix.Munmap(r.data); err != nil {
		if errors.Is(err, unix.EINVAL) {
			// Already unmapped.
			return nil
		}
		return errors.Wrap(err, "region: munmap")
	}
	return nil
}
