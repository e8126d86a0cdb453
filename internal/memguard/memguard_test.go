package memguard

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchExitsWhenOverCeiling(t *testing.T) {
	origExit := osExit
	origInterval := tickInterval
	defer func() { osExit = origExit; tickInterval = origInterval }()

	tickInterval = 10 * time.Millisecond
	var exited int32
	osExit = func(code int) { atomic.StoreInt32(&exited, 1) }

	done := make(chan struct{})
	go watch(0, done) // ceiling of 0MB: any resident memory trips it
	defer close(done)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&exited) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWatchStopsOnDone(t *testing.T) {
	origExit := osExit
	origInterval := tickInterval
	defer func() { osExit = origExit; tickInterval = origInterval }()

	tickInterval = 10 * time.Millisecond
	var exited int32
	osExit = func(code int) { atomic.StoreInt32(&exited, 1) }

	done := make(chan struct{})
	close(done) // already stopped before the first tick
	watch(1<<30, done)

	assert.Equal(t, int32(0), atomic.LoadInt32(&exited))
}
