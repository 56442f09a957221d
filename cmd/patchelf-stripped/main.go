// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/ThatMG393/patchelf-stripped/internal/elf"
)

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fatalf("%v", err)
	}
	setDebug(opts.debug)

	exitCode := 0
	for _, path := range opts.files {
		if err := processFile(opts, path); err != nil {
			warnf("%s: %v", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func processFile(opts *options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	f, err := elf.ParseFile(data, elf.Options{
		ForcedPageSize:       opts.pageSize,
		NoSort:               opts.noSort,
		NoClobberOldSections: opts.noClobber,
		Warnf: func(format string, args ...any) {
			warnf(format, args...)
		},
	})
	if err != nil {
		return err
	}

	if opts.printNeeded {
		names, err := f.NeededLibraries()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}
	if opts.printRPath {
		rpath, err := f.RPath()
		if err != nil {
			return err
		}
		fmt.Println(rpath)
		return nil
	}

	Debugf("parsed %s: class=%d type=%d machine=%d", path, f.Class, f.Type, f.Machine)

	if err := f.RenameNeeded(opts.renameMap); err != nil {
		return err
	}

	if !f.Changed() && !opts.alwaysWrite {
		Debugf("%s: no change, not writing", path)
		return nil
	}

	outPath := opts.output
	if outPath == "" {
		outPath = path
	}
	return writeOutput(outPath, f.Bytes())
}

func writeOutput(path string, data []byte) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("opening output %s: %w", path, err)
	}
	writeErr := writeAllRetrying(out, data)
	closeErr := closeIgnoringEINTR(out)
	if writeErr != nil {
		return fmt.Errorf("writing output %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing output %s: %w", path, closeErr)
	}
	return nil
}
