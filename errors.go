// SPDX-License-Identifier: EPL-2.0

package bestaudio

import "errors"

var (
	ErrInvalidOptions    = errors.New("invalid options")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidFormat     = errors.New("decoder reported an invalid audio format")
	ErrTrackNotFound     = errors.New("no such audio track")
	ErrClosed            = errors.New("source is closed")
	ErrNegativeCount     = errors.New("sample count is negative")
	ErrDecode            = errors.New("decoding failed")
	ErrFormatChanged     = errors.New("audio format changed mid-stream")
	ErrVariableFormat    = errors.New("stream may change format mid-stream")
	ErrCanceled          = errors.New("canceled by progress callback")
	ErrIndex             = errors.New("index error")
)
