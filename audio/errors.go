// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrShortBuffer  = errors.New("dst is smaller than one frame")
	ErrPartialFrame = errors.New("dst size must be multiple of frame size")
	ErrNotSeekable  = errors.New("stream is not seekable")
)
