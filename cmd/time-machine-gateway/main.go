// Command time-machine-gateway is installed setuid root next to the
// time_machine snapshot script and runs it on behalf of the build agent. It
// takes no arguments.
package main

import (
	"os"

	"github.com/omegaup/gateway/gateway"
)

func main() {
	os.Exit(gateway.TimeMachine().Main(os.Args, os.Stderr, gateway.UnixExecer))
}
