// Package activity knows whether a client currently has a side story event
// open, for the OnSideStory schedule condition.
//
// The real implementation (an HTTP call against a maintained activity
// calendar) lives outside this module; this package only defines the seam
// and a conservative stub.
package activity

import (
	"context"

	"github.com/maa-cli/maa-go/internal/clienttype"
)

// Oracle answers whether a client currently has a side story event open.
type Oracle interface {
	HasSideStoryOpen(ctx context.Context, client clienttype.ClientType) (bool, error)
}

// Stub is a conservative Oracle that always reports no side story open,
// used when no real oracle has been wired in (e.g. offline use, or before
// the out-of-scope HTTP-backed implementation is attached).
type Stub struct{}

func (Stub) HasSideStoryOpen(context.Context, clienttype.ClientType) (bool, error) {
	return false, nil
}

var _ Oracle = Stub{}

var current Oracle = Stub{}

// SetOracle installs the process-wide Oracle used by Condition evaluation.
func SetOracle(o Oracle) {
	if o == nil {
		o = Stub{}
	}
	current = o
}

// Current returns the process-wide Oracle.
func Current() Oracle {
	return current
}
