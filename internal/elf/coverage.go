// SPDX-License-Identifier: MIT

package elf

import "github.com/ThatMG393/patchelf-stripped/internal/layout"

// loadSegmentRange adapts a *ProgramHeader to layout.RangePlaceable over
// its file extent, so the PT_LOAD set can be checked for overlap with a
// layout.Span.
type loadSegmentRange struct{ ph *ProgramHeader }

func (r loadSegmentRange) Offset() uint64 { return r.ph.Offset }
func (r loadSegmentRange) Size() uint64   { return r.ph.FileSize }

// verifyLoadsDisjoint checks that no two PT_LOAD segments claim overlapping
// file ranges, by claiming each at its own already-decided offset and
// rejecting any that collides with one claimed earlier.
func (f *File) verifyLoadsDisjoint() error {
	span := layout.NewSpan[loadSegmentRange](0, uint64(f.buf.Len()))
	for _, ph := range f.ProgramHeaders {
		if ph.Type != PT_LOAD || ph.FileSize == 0 {
			continue
		}
		if !span.Claim(loadSegmentRange{ph: ph}) {
			return layoutErr("PT_LOAD segments claim overlapping file ranges")
		}
	}
	return nil
}

// coveringLoad returns the unique PT_LOAD whose file range covers offset,
// used by the executable-mode planner (locating the segment that must grow
// to cover the relocated header/section block) and by tests asserting
// invariant §8.4 (a moved section's sh_addr-sh_offset matches its covering
// segment's p_vaddr-p_offset).
func (f *File) coveringLoad(offset uint64) *ProgramHeader {
	for _, ph := range f.ProgramHeaders {
		if ph.Type == PT_LOAD && offset >= ph.Offset && offset < ph.Offset+ph.FileSize {
			return ph
		}
	}
	return nil
}
