package common

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DefaultProcRoot is where the kernel exposes per-process information.
const DefaultProcRoot = "/proc"

// deletedSuffix is appended by the kernel to the exe link of a process whose
// image has been unlinked or replaced since it started.
const deletedSuffix = " (deleted)"

// ResolveExecutable returns the absolute path of the running executable, as
// recorded by the kernel under procRoot/<pid>/exe. argv[0] and PATH are never
// consulted.
func ResolveExecutable(procRoot string) (string, error) {
	link := filepath.Join(procRoot, strconv.Itoa(os.Getpid()), "exe")
	if len(link) >= unix.PathMax {
		return "", &ResourceError{Resource: "proc path"}
	}
	exe, err := os.Readlink(link)
	if err != nil {
		return "", &IdentityError{Cause: errors.Wrap(err, "readlink")}
	}
	if exe == "" {
		return "", &IdentityError{Cause: errors.New("empty exe link")}
	}
	if !filepath.IsAbs(exe) {
		return "", &IdentityError{Cause: errors.New("relative exe link")}
	}
	if strings.HasSuffix(exe, deletedSuffix) {
		return "", &IdentityError{Cause: errors.New("executable was deleted")}
	}
	if len(exe) >= unix.PathMax {
		return "", &ResourceError{Resource: "exe path"}
	}
	return exe, nil
}

// ResolveSibling returns the path of name in the same directory as the running
// executable.
func ResolveSibling(procRoot, name string) (string, error) {
	exe, err := ResolveExecutable(procRoot)
	if err != nil {
		return "", err
	}
	sibling := filepath.Join(filepath.Dir(exe), name)
	if len(sibling) >= unix.PathMax {
		return "", &ResourceError{Resource: "sibling path"}
	}
	return sibling, nil
}
