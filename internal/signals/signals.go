// Package signals implements SIGINT/SIGTERM handling: the first delivery
// sets an atomic stop flag the poll loop observes on its next tick; a
// second delivery lets the default handler terminate the process
// immediately.
package signals

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Watcher tracks whether a termination signal has been received.
type Watcher struct {
	stop atomic.Bool
	ch   chan os.Signal
}

// NewWatcher registers SIGINT/SIGTERM handlers and returns a Watcher whose
// Stopped method the poll loop can check each tick. A second signal falls
// through to the process's default disposition.
func NewWatcher() *Watcher {
	w := &Watcher{ch: make(chan os.Signal, 2)}
	signal.Notify(w.ch, syscall.SIGINT, syscall.SIGTERM)
	go w.loop()
	return w
}

func (w *Watcher) loop() {
	<-w.ch
	w.stop.Store(true)
	<-w.ch
	signal.Stop(w.ch)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
}

// Stopped reports whether a termination signal has been observed.
func (w *Watcher) Stopped() bool {
	return w.stop.Load()
}

// Close stops forwarding signals to this watcher, restoring default
// disposition; used when the driver exits normally without ever receiving
// a signal.
func (w *Watcher) Close() {
	signal.Stop(w.ch)
}
