// Command rdiff-backup-gateway is installed setuid root so that the build
// agent can run rdiff-backup on a fixed set of directories.
//
// Usage:
//
//	rdiff-backup-gateway [--verbosity=N] <source> <destination>
package main

import (
	"os"

	"github.com/omegaup/gateway/gateway"
)

func main() {
	os.Exit(gateway.RdiffBackup().Main(os.Args, os.Stderr, gateway.UnixExecer))
}
