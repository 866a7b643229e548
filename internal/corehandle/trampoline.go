package corehandle

/*
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// goCoreCallback is the single C-ABI entry point the Core invokes from its
// own worker thread. It takes raw pointers and marshals immediately into an
// owned byte slice; no higher-level types are constructed on the foreign
// thread. custom_arg is the cgo.Handle minted in New, round-tripped through
// a bare uintptr so nothing but an opaque token crosses the cgo boundary.
//
//export goCoreCallback
func goCoreCallback(msgCode C.int32_t, detailJSON *C.char, customArg unsafe.Pointer) {
	h := cgo.Handle(uintptr(customArg))
	cb, ok := h.Value().(CallbackFunc)
	if !ok || cb == nil {
		return
	}
	payload := []byte(C.GoString(detailJSON))
	cb(int32(msgCode), payload)
}
