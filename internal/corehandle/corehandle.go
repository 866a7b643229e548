// Package corehandle is a thin ownership wrapper over the Core's C ABI: a
// runtime-dlopen'd shared library exchanging plain JSON strings across the
// boundary rather than a link-time dependency with a fixed schema.
package corehandle

/*
#cgo LDFLAGS: -ldl
#include <stdlib.h>
#include "bindings.h"

extern void goCoreCallback(int32_t msg_code, char *detail_json, void *custom_arg);
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"

	"github.com/maa-cli/maa-go/internal/apperr"
)

// CallbackFunc receives one decoded message from the Core's foreign-thread
// callback. It must not construct anything beyond copying msgCode/payload:
// the actual classification into typed events happens one layer up, in the
// callback package.
type CallbackFunc func(msgCode int32, payload []byte)

var (
	loadMu sync.Mutex
)

// Load dlopen()s the Core shared library at path, idempotently. Load and
// Unload are serialized by loadMu on the Go side and by a mutex in
// bindings.c, so concurrent callers need no lock of their own.
func Load(path string) error {
	loadMu.Lock()
	defer loadMu.Unlock()
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if C.maa_core_load(cPath) == 0 {
		return apperr.New(apperr.KindFFI, "failed to load core library at %q", path)
	}
	return nil
}

// Unload releases the process-wide Core library handle.
func Unload() {
	loadMu.Lock()
	defer loadMu.Unlock()
	C.maa_core_unload()
}

// Loaded reports whether the Core library is currently loaded.
func Loaded() bool {
	return C.maa_core_loaded() != 0
}

// SetUserDir sets the Core's user (state) directory.
func SetUserDir(path string) error {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if C.maa_call_set_user_dir(cPath) == 0 {
		return apperr.New(apperr.KindFFI, "AsstSetUserDir failed for %q", path)
	}
	return nil
}

// SetStaticOption applies a process-wide static option.
func SetStaticOption(key int32, value string) error {
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	if C.maa_call_set_static_option(C.int32_t(key), cValue) == 0 {
		return apperr.New(apperr.KindFFI, "AsstSetStaticOption(%d) failed", key)
	}
	return nil
}

// LoadResource loads one resource directory into the Core.
func LoadResource(path string) error {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if C.maa_call_load_resource(cPath) == 0 {
		return apperr.New(apperr.KindFFI, "AsstLoadResource failed for %q", path)
	}
	return nil
}

// TaskID is the Core's opaque task handle.
type TaskID = int32

// AsyncCallID is the Core's opaque id for an asynchronous call such as
// AsstAsyncConnect.
type AsyncCallID = int32

// Instance is one live Core session, created via the ex-constructor and
// owning its callback userdata's allocation.
type Instance struct {
	ptr    unsafe.Pointer
	handle cgo.Handle
	cb     CallbackFunc
}

var registryMu sync.Mutex

// New constructs an Instance, registering cb under a cgo.Handle passed to
// the Core as the opaque userdata pointer. A cgo.Handle is an opaque
// integer token the Go runtime resolves back to cb, never a raw Go pointer
// escaping to C.
func New(cb CallbackFunc) (*Instance, error) {
	if !Loaded() {
		return nil, apperr.New(apperr.KindFFI, "core library not loaded")
	}
	h := cgo.NewHandle(cb)
	ptr := C.maa_call_create(C.maa_callback(C.goCoreCallback), unsafe.Pointer(uintptr(h)))
	if ptr == nil {
		h.Delete()
		return nil, apperr.New(apperr.KindFFI, "AsstCreateEx returned null")
	}
	inst := &Instance{ptr: ptr, handle: h, cb: cb}
	return inst, nil
}

// Close destroys the underlying Core instance and releases the callback
// handle.
func (i *Instance) Close() {
	if i.ptr != nil {
		C.maa_call_destroy(i.ptr)
		i.ptr = nil
	}
	i.handle.Delete()
}

// SetInstanceOption applies one per-instance option.
func (i *Instance) SetInstanceOption(key int32, value string) error {
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	if C.maa_call_set_instance_option(i.ptr, C.int32_t(key), cValue) == 0 {
		return apperr.New(apperr.KindFFI, "AsstSetInstanceOption(%d) failed", key)
	}
	return nil
}

// AppendTask submits a new task chain with JSON-encoded params, returning
// its TaskID.
func (i *Instance) AppendTask(taskType string, paramsJSON []byte) (TaskID, error) {
	cType := C.CString(taskType)
	defer C.free(unsafe.Pointer(cType))
	cParams := C.CString(string(paramsJSON))
	defer C.free(unsafe.Pointer(cParams))
	id := C.maa_call_append_task(i.ptr, cType, cParams)
	if id < 0 {
		return 0, apperr.New(apperr.KindFFI, "AsstAppendTask(%s) failed", taskType)
	}
	return TaskID(id), nil
}

// SetTaskParams updates an already-appended task's params.
func (i *Instance) SetTaskParams(id TaskID, paramsJSON []byte) error {
	cParams := C.CString(string(paramsJSON))
	defer C.free(unsafe.Pointer(cParams))
	if C.maa_call_set_task_params(i.ptr, C.int32_t(id), cParams) == 0 {
		return apperr.New(apperr.KindFFI, "AsstSetTaskParams(%d) failed", id)
	}
	return nil
}

// AsyncConnect connects to the device/emulator, optionally blocking until
// connected.
func (i *Instance) AsyncConnect(adb, addr, coreConfig string, block bool) (AsyncCallID, error) {
	cAdb := C.CString(adb)
	defer C.free(unsafe.Pointer(cAdb))
	cAddr := C.CString(addr)
	defer C.free(unsafe.Pointer(cAddr))
	cCfg := C.CString(coreConfig)
	defer C.free(unsafe.Pointer(cCfg))
	id := C.maa_call_async_connect(i.ptr, cAdb, cAddr, cCfg, C.bool(block))
	if id < 0 {
		return 0, apperr.New(apperr.KindFFI, "AsstAsyncConnect failed")
	}
	return AsyncCallID(id), nil
}

// Start begins executing the registered task queue.
func (i *Instance) Start() error {
	if C.maa_call_start(i.ptr) == 0 {
		return apperr.New(apperr.KindFFI, "AsstStart failed")
	}
	return nil
}

// Stop halts task execution, flushing the Core's internal queue.
func (i *Instance) Stop() error {
	if C.maa_call_stop(i.ptr) == 0 {
		return apperr.New(apperr.KindFFI, "AsstStop failed")
	}
	return nil
}

// Running reports whether the Core is still executing tasks.
func (i *Instance) Running() bool {
	return C.maa_call_running(i.ptr) != 0
}
