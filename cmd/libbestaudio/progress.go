// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package main

/*
#cgo CFLAGS: -I${SRCDIR}
#include "bestaudio.h"

static inline int bsw_call_progress(BSW_ProgressFunction fn, int track, int64_t current, int64_t total) {
	return fn(track, current, total);
}
*/
import "C"

import "github.com/ik5/bestaudio"

// progressFunc adapts a C callback. A nil callback disables reporting.
func progressFunc(fn C.BSW_ProgressFunction) bestaudio.ProgressFunc {
	if fn == nil {
		return nil
	}
	return func(track int, current, total int64) bool {
		return C.bsw_call_progress(fn, C.int(track), C.int64_t(current), C.int64_t(total)) == 0
	}
}
