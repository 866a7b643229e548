package rundriver

import (
	"github.com/nightlyone/lockfile"

	"github.com/maa-cli/maa-go/internal/apperr"
)

// acquireRunLock prevents two orchestrator invocations against the same
// profile's $STATE_DIR from connecting to the Core simultaneously.
func (d *Driver) acquireRunLock() (lockfile.Lockfile, error) {
	lock, err := lockfile.New(d.Dirs.State + "/run.lock")
	if err != nil {
		return "", apperr.Wrap(apperr.KindRuntime, err, "constructing run lock path")
	}
	if err := lock.TryLock(); err != nil {
		return "", apperr.Wrap(apperr.KindRuntime, err, "acquiring run lock")
	}
	return lock, nil
}

func (d *Driver) releaseRunLock(lock lockfile.Lockfile) {
	_ = lock.Unlock()
}
