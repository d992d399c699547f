package loopctl

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type deviceControl struct {
	fd int
}

// Open opens the loop control device at path.
func Open(path string) (Control, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot open %s", path)
	}
	return &deviceControl{fd: fd}, nil
}

func (c *deviceControl) Add(index int) error {
	return unix.IoctlSetInt(c.fd, unix.LOOP_CTL_ADD, index)
}

func (c *deviceControl) Close() error {
	return unix.Close(c.fd)
}
