// SPDX-License-Identifier: MIT

package elf

import "errors"

// Sentinel error kinds, matched via errors.Is / errors.As by callers.
var (
	ErrMalformed      = errors.New("malformed ELF")
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrMissingSection = errors.New("missing mandatory section")
	ErrLayout         = errors.New("layout infeasible")
)

// MalformedError wraps ErrMalformed with the specific defect found during
// parsing. These are always fatal: the rewrite aborts and the error
// propagates to the driver.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return "malformed ELF: " + e.Reason }
func (e *MalformedError) Unwrap() error { return ErrMalformed }

func malformed(reason string) error {
	return &MalformedError{Reason: reason}
}

// MissingSectionError is raised when a mandatory section or relocation
// table that a DT_* tag depends on does not exist.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return "missing mandatory section: " + e.Section
}
func (e *MissingSectionError) Unwrap() error { return ErrMissingSection }

func missingSection(name string) error {
	return &MissingSectionError{Section: name}
}

// LayoutError is raised when the layout planner cannot carve out space for
// the pending edits without violating an invariant (virtual-address
// underrun, PT_NOTE overlap that cannot be normalised, unsupported overlap
// during flush).
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string { return "layout infeasible: " + e.Reason }
func (e *LayoutError) Unwrap() error { return ErrLayout }

func layoutErr(reason string) error {
	return &LayoutError{Reason: reason}
}
