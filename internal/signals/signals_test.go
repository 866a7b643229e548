package signals

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatcherStopsOnFirstSignal(t *testing.T) {
	w := NewWatcher()
	defer w.Close()

	assert.False(t, w.Stopped())

	assert.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	deadline := time.Now().Add(2 * time.Second)
	for !w.Stopped() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.True(t, w.Stopped())
}

func TestWatcherNotStoppedAfterClose(t *testing.T) {
	w := NewWatcher()
	w.Close()
	assert.False(t, w.Stopped())
}
