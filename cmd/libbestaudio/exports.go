// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package main

/*
#cgo CFLAGS: -I${SRCDIR}
#include <stdlib.h>
#include "bestaudio.h"
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/ik5/bestaudio"
	"github.com/ik5/bestaudio/shim"
)

// The C handle is a malloc'd cell holding the shim handle, so C never sees
// a Go pointer.
func newCell(h shim.Handle) unsafe.Pointer {
	cell := C.malloc(C.size_t(unsafe.Sizeof(C.uintptr_t(0))))
	*(*C.uintptr_t)(cell) = C.uintptr_t(h)
	return cell
}

func handleOf(self unsafe.Pointer) shim.Handle {
	if self == nil {
		return 0
	}
	return shim.Handle(*(*C.uintptr_t)(self))
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

//export BestAudioSource_new
func BestAudioSource_new(sourceFile *C.char, track, adjustDelay, variableFormat, threads, cacheMode C.int,
	cachePath *C.char, drcScale C.double, progress C.BSW_ProgressFunction,
) C.struct_BSW_PointerWithError {
	opts := bestaudio.Options{
		Track:          int(track),
		AdjustDelay:    int(adjustDelay),
		VariableFormat: variableFormat != 0,
		Threads:        int(threads),
		CacheMode:      bestaudio.CacheMode(cacheMode),
		DRCScale:       float64(drcScale),
		Progress:       progressFunc(progress),
	}
	if sourceFile != nil {
		opts.SourceFile = C.GoString(sourceFile)
	}
	if cachePath != nil {
		opts.CachePath = C.GoString(cachePath)
	}

	r := shim.Default().New(opts)
	out := C.struct_BSW_PointerWithError{error: C.int(r.Error)}
	if r.Error == shim.StatusOK {
		out.value = newCell(r.Value)
	}
	return out
}

//export BestAudioSource_delete
func BestAudioSource_delete(self unsafe.Pointer) C.int {
	status := shim.Default().Delete(handleOf(self))
	if self != nil {
		C.free(self)
	}
	return C.int(status)
}

//export BestAudioSource_GetTrack
func BestAudioSource_GetTrack(self unsafe.Pointer) C.struct_BSW_IntWithError {
	r := shim.Default().GetTrack(handleOf(self))
	return C.struct_BSW_IntWithError{error: C.int(r.Error), value: C.int(r.Value)}
}

//export BestAudioSource_SetMaxCacheSize
func BestAudioSource_SetMaxCacheSize(self unsafe.Pointer, bytes C.size_t) C.int {
	n := int64(math.MaxInt64)
	if uint64(bytes) < math.MaxInt64 {
		n = int64(bytes)
	}
	return C.int(shim.Default().SetMaxCacheSize(handleOf(self), n))
}

//export BestAudioSource_SetSeekPreRoll
func BestAudioSource_SetSeekPreRoll(self unsafe.Pointer, samples C.int64_t) C.int {
	return C.int(shim.Default().SetSeekPreRoll(handleOf(self), int64(samples)))
}

//export BestAudioSource_GetRelativeStartTime
func BestAudioSource_GetRelativeStartTime(self unsafe.Pointer, track C.int) C.struct_BSW_DoubleWithError {
	r := shim.Default().GetRelativeStartTime(handleOf(self), int(track))
	return C.struct_BSW_DoubleWithError{error: C.int(r.Error), value: C.double(r.Value)}
}

//export BestAudioSource_GetExactDuration
func BestAudioSource_GetExactDuration(self unsafe.Pointer) C.struct_BSW_Int64WithError {
	r := shim.Default().GetExactDuration(handleOf(self))
	return C.struct_BSW_Int64WithError{error: C.int(r.Error), value: C.int64_t(r.Value)}
}

//export BestAudioSource_GetAudioProperties
func BestAudioSource_GetAudioProperties(self unsafe.Pointer) C.struct_BSW_AudioProperties {
	r := shim.Default().GetAudioProperties(handleOf(self))
	return C.struct_BSW_AudioProperties{
		error: C.int(r.Error),
		AF: C.struct_BSW_AudioFormat{
			Float:          cbool(r.AF.Float),
			Bits:           C.int(r.AF.Bits),
			BytesPerSample: C.int(r.AF.BytesPerSample),
		},
		SampleRate:    C.int(r.SampleRate),
		Channels:      C.int(r.Channels),
		ChannelLayout: C.uint64_t(r.ChannelLayout),
		NumSamples:    C.int64_t(r.NumSamples),
		StartTime:     C.double(r.StartTime),
	}
}

//export BestAudioSource_GetPlanarAudio
func BestAudioSource_GetPlanarAudio(self unsafe.Pointer, data **C.uint8_t, start, count C.int64_t) C.int {
	planes := (*unsafe.Pointer)(unsafe.Pointer(data))
	return C.int(shim.Default().GetPlanarAudioRaw(handleOf(self), planes, int64(start), int64(count)))
}

//export BestAudioSource_GetPackedAudio
func BestAudioSource_GetPackedAudio(self unsafe.Pointer, data *C.uint8_t, start, count C.int64_t) C.int {
	return C.int(shim.Default().GetPackedAudioRaw(handleOf(self), unsafe.Pointer(data), int64(start), int64(count)))
}

//export BestAudioSource_SetProgressCallback
func BestAudioSource_SetProgressCallback(self unsafe.Pointer, progress C.BSW_ProgressFunction) C.int {
	return C.int(shim.Default().SetProgressCallback(handleOf(self), progressFunc(progress)))
}
