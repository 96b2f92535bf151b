// SPDX-License-Identifier: EPL-2.0

package shim

import "errors"

var (
	ErrInvalidHandle  = errors.New("invalid handle")
	ErrNoSource       = errors.New("opener returned no source")
	ErrBufferTooLarge = errors.New("buffer size out of range")
)
