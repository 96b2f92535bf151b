// SPDX-License-Identifier: EPL-2.0

package index

import "errors"

var ErrUnavailable = errors.New("index store unavailable")
