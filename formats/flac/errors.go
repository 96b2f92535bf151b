// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
	ErrUnsupportedBitDepth   = errors.New("FLAC bit depth above 32 bits")
	ErrChannelMismatch       = errors.New("FLAC frame channel count differs from stream info")
)
