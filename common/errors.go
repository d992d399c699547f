package common

import (
	"fmt"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Exit statuses. Every failure is terminal.
const (
	ExitSecurityCheck = 1
	ExitResource      = 2
	ExitIdentity      = 3
	ExitLaunch        = 4
)

// A SecurityCheckError is returned when a check on the caller's input fails.
// Check is always a static string and never contains caller-supplied bytes,
// so it is safe to log.
type SecurityCheckError struct {
	Check string
}

func (e *SecurityCheckError) Error() string {
	return fmt.Sprintf("Security check failed: %s", e.Check)
}

// NewSecurityCheckError returns a SecurityCheckError for the named check.
func NewSecurityCheckError(check string) error {
	return &SecurityCheckError{Check: check}
}

// A ResourceError is returned when a derived value could not be built.
type ResourceError struct {
	Resource string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("Cannot allocate %s", e.Resource)
}

// An IdentityError is returned when the executable could not determine its own
// location from the kernel.
type IdentityError struct {
	Cause error
}

func (e *IdentityError) Error() string {
	return "Cannot resolve own executable"
}

func (e *IdentityError) Unwrap() error {
	return e.Cause
}

// A LaunchError is returned when the process image could not be replaced.
type LaunchError struct {
	Path  string
	Cause error
}

func (e *LaunchError) Error() string {
	return "Failed to load new process image"
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// ExitCode maps an error to the status the process should exit with. Errors
// that do not belong to any known class are treated as security failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var securityErr *SecurityCheckError
	var resourceErr *ResourceError
	var identityErr *IdentityError
	var launchErr *LaunchError
	switch {
	case errors.As(err, &securityErr):
		return ExitSecurityCheck
	case errors.As(err, &resourceErr):
		return ExitResource
	case errors.As(err, &identityErr):
		return ExitIdentity
	case errors.As(err, &launchErr):
		return ExitLaunch
	}
	return ExitSecurityCheck
}

// Diagnose logs a single line describing err. Only the static description of
// the error class reaches the log, never the wrapped messages, which may carry
// caller-influenced text.
func Diagnose(log log15.Logger, err error) {
	var securityErr *SecurityCheckError
	var resourceErr *ResourceError
	var identityErr *IdentityError
	var launchErr *LaunchError
	switch {
	case errors.As(err, &securityErr):
		log.Error(securityErr.Error(), "check", securityErr.Check)
	case errors.As(err, &resourceErr):
		log.Error(resourceErr.Error())
	case errors.As(err, &identityErr):
		log.Error(identityErr.Error())
	case errors.As(err, &launchErr):
		log.Error(launchErr.Error(), "path", launchErr.Path)
	default:
		log.Error("Security check failed: unexpected error")
	}
}
