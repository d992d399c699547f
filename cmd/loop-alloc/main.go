// Command loop-alloc creates loop block devices through /dev/loop-control.
//
// Usage:
//
//	loop-alloc [<num loop devices>]
//
// The exit status is the number of devices that could not be created, or 127
// on a usage error.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/inconshreveable/log15"
	"github.com/omegaup/gateway/common"
	"github.com/omegaup/gateway/loopctl"
	"github.com/spf13/cobra"
)

const (
	exitUsage = 127

	// Exit statuses wrap at 256; a large failure count must never read as
	// success.
	maxFailureStatus = 125
)

// usageError is reported with the usage line and exitUsage.
type usageError struct{}

func (usageError) Error() string {
	return "USAGE: loop-alloc [<num loop devices>]"
}

// openFunc is replaced in tests.
var openFunc = loopctl.Open

// parseCount parses the optional device count. Like strtol with base 0, it
// accepts decimal, octal and hexadecimal spellings.
func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return loopctl.DefaultCount, nil
	}
	count, err := strconv.ParseInt(args[0], 0, 32)
	if err != nil || count <= 0 {
		return 0, usageError{}
	}
	return int(count), nil
}

func newRootCommand(stderr io.Writer, status *int) *cobra.Command {
	var controlPath, textfile string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "loop-alloc [<num loop devices>]",
		Short: "Create loop devices through the loop control device",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError{}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args)
			if err != nil {
				return err
			}

			log := log15.New()
			handler := common.DiagnosticHandler(stderr)
			if verbose {
				handler = log15.MultiHandler(
					handler,
					log15.FilterHandler(
						func(r *log15.Record) bool { return r.Lvl > log15.LvlError },
						log15.StreamHandler(stderr, log15.LogfmtFormat()),
					),
				)
			}
			log.SetHandler(handler)

			control, err := openFunc(controlPath)
			if err != nil {
				log.Error(err.Error())
				*status = exitUsage
				return nil
			}
			defer control.Close()

			metrics := newPrometheusMetrics()
			result := loopctl.Allocate(log, control, count, metrics)
			if textfile != "" {
				if err := metrics.WriteTextfile(textfile); err != nil {
					log.Error(fmt.Sprintf("Cannot write metrics: %v", err))
				}
			}

			*status = result.Failed
			if *status > maxFailureStatus {
				*status = maxFailureStatus
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return usageError{}
	})
	cmd.Flags().StringVar(&controlPath, "control", loopctl.DefaultControlPath, "loop control device")
	cmd.Flags().StringVar(&textfile, "textfile", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every created device")
	return cmd
}

// run executes loop-alloc with args and returns its exit status.
func run(args []string, stderr io.Writer) int {
	status := 0
	cmd := newRootCommand(stderr, &status)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, usageError{}.Error())
		return exitUsage
	}
	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
