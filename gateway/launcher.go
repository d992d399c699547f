package gateway

import (
	"github.com/omegaup/gateway/common"
	"golang.org/x/sys/unix"
)

// An Execer replaces the current process image. It only returns on failure.
type Execer interface {
	Exec(path string, argv []string, env []string) error
}

// ExecerFunc adapts a function to the Execer interface.
type ExecerFunc func(path string, argv []string, env []string) error

// Exec calls f.
func (f ExecerFunc) Exec(path string, argv []string, env []string) error {
	return f(path, argv, env)
}

// UnixExecer replaces the process image with execve(2). No shell is involved
// at any point.
var UnixExecer Execer = ExecerFunc(unix.Exec)

// A Launcher transfers control to a trusted executable.
type Launcher struct {
	Execer Execer
	// Env is the complete environment of the new image.
	Env []string
}

// Argv assembles the argument vector of the trusted executable out of vetted
// pieces only: its own path, the verbosity flag rebuilt from its integer
// value, and the extra literals, which must come from a matched entry.
func Argv(path string, request *Request, literals ...string) []string {
	argv := make([]string, 0, 2+len(literals))
	argv = append(argv, path)
	if request != nil {
		if verbosity := request.VerbosityArgument(); verbosity != "" {
			argv = append(argv, verbosity)
		}
	}
	argv = append(argv, literals...)
	return argv
}

// Launch replaces the current process with path. On success it never returns.
func (l *Launcher) Launch(path string, argv []string) error {
	err := l.Execer.Exec(path, argv, l.Env)
	if err == nil {
		// Only fakes can get here.
		return nil
	}
	return &common.LaunchError{Path: path, Cause: err}
}
