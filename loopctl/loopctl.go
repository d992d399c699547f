// Package loopctl creates loop block devices through the loop control device.
//
// This allows simulating different CONFIG_BLK_DEV_LOOP_MIN_COUNT values
// without recompiling the kernel, which crops up when a container needs a loop
// device but runs an OS image whose util-linux predates /dev/loop-control.
package loopctl

import (
	"fmt"
	"io"

	"github.com/inconshreveable/log15"
)

// DefaultControlPath is the kernel's loop control device.
const DefaultControlPath = "/dev/loop-control"

// DefaultCount is the number of devices created when none is requested.
const DefaultCount = 8

// Control issues requests to a loop control device.
type Control interface {
	io.Closer

	// Add asks the kernel to create /dev/loop<index>.
	Add(index int) error
}

// Metrics receives the outcome of every Add.
type Metrics interface {
	CounterAdd(name string, value float64)
}

// NoOpMetrics is an implementation of Metrics that does nothing.
type NoOpMetrics struct {
}

// CounterAdd does nothing.
func (n *NoOpMetrics) CounterAdd(name string, value float64) {
}

// Result summarizes an Allocate call.
type Result struct {
	Created int
	Failed  int
}

// Allocate requests devices 0 through count-1. A failure on one index does not
// stop the others; each one is logged and counted.
func Allocate(log log15.Logger, control Control, count int, metrics Metrics) Result {
	var result Result
	for i := 0; i < count; i++ {
		if err := control.Add(i); err != nil {
			log.Error(
				fmt.Sprintf("Cannot create /dev/loop%d: %v", i, err),
				"index", i,
				"err", err,
			)
			metrics.CounterAdd("loop_devices_failed", 1)
			result.Failed++
			continue
		}
		log.Debug("created loop device", "index", i)
		metrics.CounterAdd("loop_devices_created", 1)
		result.Created++
	}
	return result
}
