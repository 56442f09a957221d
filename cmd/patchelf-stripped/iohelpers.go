// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// closeIgnoringEINTR closes f, ignoring EINTR (§7: "writes to a closed file
// descriptor returning EINTR are ignored on close").
func closeIgnoringEINTR(f *os.File) error {
	err := f.Close()
	if errors.Is(err, unix.EINTR) {
		return nil
	}
	return err
}

// writeAllRetrying writes the full buffer to fd, retrying on a partial
// write (§7: "partial writes retry") and on EINTR.
func writeAllRetrying(f *os.File, data []byte) error {
	for len(data) > 0 {
		n, err := unix.Write(int(f.Fd()), data)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		data = data[n:]
	}
	return nil
}
