// SPDX-License-Identifier: EPL-2.0

//go:build cgo

// Command libbestaudio is the C interface to bestaudio sources.
//
// # Build
//
//	CGO_ENABLED=1 go build -buildmode=c-shared -o libbestaudio.so ./cmd/libbestaudio
//
// The build writes libbestaudio.h with the BestAudioSource_* prototypes; the
// structures they use are in bestaudio.h.
//
// # Environment
//
// BESTAUDIO_LOG_LEVEL (debug, info, warn, error; unset or off disables) and
// BESTAUDIO_LOG_FORMAT (text or json) configure logging to stderr.
package main

import (
	"github.com/ik5/bestaudio/internal/logger"
	"github.com/ik5/bestaudio/shim"
)

func init() {
	shim.Default().SetLogger(logger.FromEnv())
}

func main() {}
