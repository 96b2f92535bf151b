// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "libbestaudio must be built with CGO_ENABLED=1 and -buildmode=c-shared")
	os.Exit(1)
}
