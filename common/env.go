package common

import (
	"os"

	"github.com/pkg/errors"
)

// SanitizeEnvironment drops every inherited environment variable and installs
// trustedPath as the only one. It must be the first thing main does: nothing
// that runs afterwards may observe a variable the caller controlled.
func SanitizeEnvironment(trustedPath string) error {
	os.Clearenv()
	if err := os.Setenv("PATH", trustedPath); err != nil {
		return errors.Wrap(&ResourceError{Resource: "environment"}, err.Error())
	}
	return nil
}

// Environment returns the environment handed to the trusted executable. It is
// rebuilt from trustedPath instead of read back from the process so that it
// contains exactly one variable.
func Environment(trustedPath string) []string {
	return []string{"PATH=" + trustedPath}
}
