// SPDX-License-Identifier: MIT

package elf

// normalizeNotes splits any PT_NOTE segment covering more than one
// SHT_NOTE section into one PT_NOTE per section, so the layout planner can
// relocate note sections independently. Only invoked when at least one
// pending edit targets an SHT_NOTE section.
func (f *File) normalizeNotes() error {
	originals := f.ProgramHeaders

	for _, ph := range originals {
		if ph.Type != PT_NOTE {
			continue
		}

		var covered []*SectionHeader
		for _, sh := range f.Sections {
			if sh.Type != SHT_NOTE {
				continue
			}
			if sh.Offset >= ph.Offset && sh.Offset < ph.Offset+ph.FileSize {
				covered = append(covered, sh)
			}
		}
		if len(covered) == 0 {
			continue
		}

		cursor := ph.Offset
		segEnd := ph.Offset + ph.FileSize
		first := true
		for _, sh := range covered {
			align := sh.AddrAlign
			if align == 0 {
				align = noteAddrAlignDefault
			}
			cursor = roundUp(cursor, align)
			if cursor != sh.Offset {
				return layoutErr("non-contiguous: PT_NOTE segment does not meet next SHT_NOTE section start")
			}
			if sh.Offset+sh.Size > segEnd {
				return layoutErr("partially mapped: SHT_NOTE section overruns its PT_NOTE segment")
			}

			if first {
				ph.Offset, ph.VAddr, ph.PAddr = sh.Offset, sh.Address, sh.Address
				ph.FileSize, ph.MemSize = sh.Size, sh.Size
				first = false
			} else {
				f.ProgramHeaders = append(f.ProgramHeaders, &ProgramHeader{
					Type:     PT_NOTE,
					Flags:    ph.Flags,
					Offset:   sh.Offset,
					VAddr:    sh.Address,
					PAddr:    sh.Address,
					FileSize: sh.Size,
					MemSize:  sh.Size,
					Align:    ph.Align,
				})
			}
			cursor = sh.Offset + sh.Size
		}
	}

	return nil
}
