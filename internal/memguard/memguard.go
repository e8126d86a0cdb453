// Package memguard enforces the build's process-wide memory ceiling
// (§5 of the resource model). Go's hard out-of-memory failure bypasses
// defer/recover entirely, so the ceiling is enforced three ways: a
// Go-runtime-aware soft limit that triggers more aggressive GC, a
// hard OS-level address-space limit as a last resort, and a watchdog
// that proactively reports ResourceExhaustion before either one turns
// into an unrecoverable crash.
package memguard

import (
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gcbaptista/webwarcindex/internal/errors"
)

// osExit is a variable so tests can observe a would-be exit without
// killing the test binary.
var osExit = os.Exit

// tickInterval is a variable so tests don't have to wait out the real
// polling interval.
var tickInterval = 2 * time.Second

// Enforce installs the memory ceiling and returns a function that
// stops the watchdog goroutine.
func Enforce(ceilingMB int) (stop func()) {
	debug.SetMemoryLimit(int64(ceilingMB) * 1 << 20)

	if err := setHardLimit(ceilingMB); err != nil {
		log.Printf("memguard: could not set a hard address-space limit: %v", err)
	}

	done := make(chan struct{})
	go watch(ceilingMB, done)
	return func() { close(done) }
}

func watch(ceilingMB int, done <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			observedMB := int(mem.Sys / (1 << 20))
			if observedMB > ceilingMB {
				err := errors.NewResourceExhaustionError(ceilingMB, observedMB)
				log.Println(err.Error())
				osExit(1)
			}
		}
	}
}
