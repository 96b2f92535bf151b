// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package main

/*
#include <stdlib.h>
#include "bestaudio.h"

static int bsw_progress_calls;

static int bsw_count_progress(int track, int64_t current, int64_t total) {
	bsw_progress_calls++;
	return 0;
}

static int bsw_cancel_progress(int track, int64_t current, int64_t total) {
	bsw_progress_calls++;
	return 1;
}
*/
import "C"

import "unsafe"

// Helpers for driving the exports from Go with C-owned memory, the way a C
// caller does. Package tests cannot import "C" themselves.

func cString(s string) *C.char { return C.CString(s) }

func cFree(p unsafe.Pointer) { C.free(p) }

func cInt(v int) C.int { return C.int(v) }

// cBuffer allocates n zeroed bytes of C memory and a Go view of them.
func cBuffer(n int) (*C.uint8_t, []byte) {
	p := (*C.uint8_t)(C.calloc(C.size_t(n), 1))
	return p, unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// cPlanes allocates channels buffers of n bytes plus the pointer array
// naming them. free releases all of it.
func cPlanes(channels, n int) (arr **C.uint8_t, views [][]byte, free func()) {
	arr = (**C.uint8_t)(C.calloc(C.size_t(channels), C.size_t(unsafe.Sizeof(uintptr(0)))))
	ptrs := unsafe.Slice(arr, channels)
	views = make([][]byte, channels)
	for ch := range channels {
		ptrs[ch], views[ch] = cBuffer(n)
	}
	return arr, views, func() {
		for _, p := range ptrs {
			C.free(unsafe.Pointer(p))
		}
		C.free(unsafe.Pointer(arr))
	}
}

// countingProgress returns a callback that counts its calls and never
// cancels; cancelingProgress counts and cancels.
func countingProgress() C.BSW_ProgressFunction {
	C.bsw_progress_calls = 0
	return C.BSW_ProgressFunction(C.bsw_count_progress)
}

func cancelingProgress() C.BSW_ProgressFunction {
	C.bsw_progress_calls = 0
	return C.BSW_ProgressFunction(C.bsw_cancel_progress)
}

func progressCalls() int { return int(C.bsw_progress_calls) }
