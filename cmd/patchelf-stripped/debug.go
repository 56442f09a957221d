// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
)

var progName = "patchelf-stripped"

// debugEnabled is VerboseMode's equivalent here: a single process-wide
// flag, set once from --debug or a non-empty PATCHELF_DEBUG, consulted by
// Debugf before every diagnostic print.
var debugEnabled bool

func setDebug(flag bool) {
	debugEnabled = flag || env.Str("PATCHELF_DEBUG") != ""
}

func Debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, progName+": debug: "+format+"\n", args...)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, progName+": warning: "+format+"\n", args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, progName+": "+format+"\n", args...)
	os.Exit(1)
}
