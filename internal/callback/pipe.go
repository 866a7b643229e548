// Package callback hands the Core's asynchronous task-chain events from its
// own callback thread to the main thread's live run Summary, without ever
// locking the Summary itself: a single-producer(s)/single-consumer channel
// feeds a Subscriber that is the only thing allowed to touch the Summary.
package callback

import (
	"sync"
)

// MsgCode mirrors the Core's integer message codes. Only the subset this
// orchestrator acts on by name is enumerated; unrecognized codes are logged
// and ignored, never fatal.
type MsgCode int

const (
	MsgUuidGot MsgCode = iota
	MsgConnectFailed
	MsgResolutionGot
	MsgConnected
	MsgDisconnect
	MsgReconnecting
	MsgReconnected
	MsgScreencapCost
	MsgTouchModeNotAvailable
	MsgTaskChainStart
	MsgTaskChainCompleted
	MsgTaskChainStopped
	MsgTaskChainError
	MsgTaskChainExtraInfo
	MsgSubTaskStart
	MsgSubTaskCompleted
	MsgSubTaskError
	MsgSubTaskExtraInfo
	MsgSubTaskStopped
	MsgAllTasksCompleted
	MsgAsyncCallInfo
	MsgInternalError
	MsgInitFailed
	MsgDestroyed
)

// Message is one decoded event pulled off the channel before it's applied
// to the Summary. Payload is kept as raw JSON rather than a parsed map: the
// foreign-thread trampoline that produces it must not construct
// higher-level types, and the consumer extracts individual fields
// defensively with gjson rather than strictly unmarshaling into a typed
// struct, since the Core's payload shapes vary by msg_code and
// absent/malformed fields are logged-and-ignored, not fatal.
type Message struct {
	Code    MsgCode
	TaskID  int32
	Payload []byte
}

// pipe is the process-wide container; each Init call replaces it.
type pipe struct {
	mu      sync.Mutex
	ch      chan Message
	errFlag errorFlag
}

type errorFlag struct {
	mu  sync.Mutex
	set bool
}

func (f *errorFlag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

func (f *errorFlag) Get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

var (
	globalMu   sync.Mutex
	globalPipe *pipe
)

// Init creates the process-wide pipe and returns a Subscriber bound to it.
// Must be called before the Core's callback trampoline sends its first
// message; calling Send before Init is a programmer error and panics.
func Init(bufferSize int) *Subscriber {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPipe = &pipe{ch: make(chan Message, bufferSize)}
	return &Subscriber{p: globalPipe, summary: newSummary()}
}

// Send enqueues a message from the Core's callback trampoline. Never
// blocks past the channel buffer; a full buffer means the consumer has
// fallen far behind and this call will block until it drains, which is
// acceptable since the trampoline itself runs on a Core-owned thread, not
// the main thread driving the poll loop.
func Send(msg Message) {
	globalMu.Lock()
	p := globalPipe
	globalMu.Unlock()
	if p == nil {
		panic("callback: Send called before Init")
	}
	switch msg.Code {
	case MsgTaskChainError, MsgSubTaskError, MsgConnectFailed, MsgInternalError, MsgInitFailed:
		p.errFlag.Set()
	}
	p.ch <- msg
}

// ErrorObserved reports whether any error-class message has been seen since
// Init, used by the run driver's post-run sticky-error check.
func ErrorObserved() bool {
	globalMu.Lock()
	p := globalPipe
	globalMu.Unlock()
	if p == nil {
		return false
	}
	return p.errFlag.Get()
}

// Close closes the underlying channel, signaling the subscriber that no
// further messages will arrive.
func Close() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalPipe != nil {
		close(globalPipe.ch)
	}
}
