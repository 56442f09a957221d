// SPDX-License-Identifier: MIT

package elf

// flushEdits writes every pending section-edit-table entry into the image
// starting at *curOff, in current SHT order, and synchronises the segment
// descriptors that mirror section placement by name or type. baseAddr and
// baseOffset give the virtual-address/file-offset pair of the region being
// filled, so sh_addr can be derived from sh_offset.
func (f *File) flushEdits(curOff *uint64, baseAddr, baseOffset uint64) error {
	boundNotes := make(map[*ProgramHeader]bool)

	for _, name := range f.edits.names(f) {
		pending := f.edits.get(name)
		sh := f.SectionByName(name)
		if sh == nil {
			continue
		}

		if f.clobberOldSections && sh.Type.HasDataInFile() && sh.Size > 0 {
			if err := f.buf.Fill(int(sh.Offset), int(sh.Size), 'Z'); err != nil {
				return err
			}
		}

		if err := f.buf.WriteBytes(int(*curOff), pending); err != nil {
			return err
		}

		oldOffset, oldSize := sh.Offset, sh.Size
		sh.Offset = *curOff
		sh.Address = baseAddr + (*curOff - baseOffset)
		sh.Size = uint64(len(pending))
		if sh.Type != SHT_NOTE || sh.AddrAlign > sectionAlignment {
			sh.AddrAlign = sectionAlignment
		}

		if err := f.syncSegments(sh, oldOffset, oldSize, boundNotes); err != nil {
			return err
		}

		*curOff += roundUp(uint64(len(pending)), sectionAlignment)
	}

	f.edits.clear()
	return nil
}

// syncSegments updates the program-header descriptors that mirror a
// section's placement, per §4.6 step 3.
func (f *File) syncSegments(sh *SectionHeader, oldOffset, oldSize uint64, boundNotes map[*ProgramHeader]bool) error {
	switch sh.Name {
	case ".interp":
		for _, ph := range f.ProgramHeaders {
			if ph.Type == PT_INTERP {
				syncPhdrToSection(ph, sh)
			}
		}
		return nil
	case ".dynamic":
		for _, ph := range f.ProgramHeaders {
			if ph.Type == PT_DYNAMIC {
				syncPhdrToSection(ph, sh)
			}
		}
		return nil
	case ".MIPS.abiflags":
		for _, ph := range f.ProgramHeaders {
			if ph.Type == PT_MIPS_ABIFLAGS {
				syncPhdrToSection(ph, sh)
			}
		}
		return nil
	case ".note.gnu.property":
		for _, ph := range f.ProgramHeaders {
			if ph.Type == PT_GNU_PROPERTY {
				syncPhdrToSection(ph, sh)
			}
		}
		return nil
	}

	if sh.Type == SHT_NOTE {
		for _, ph := range f.ProgramHeaders {
			if ph.Type != PT_NOTE || boundNotes[ph] {
				continue
			}
			if ph.Offset == oldOffset && ph.FileSize == oldSize {
				syncPhdrToSection(ph, sh)
				boundNotes[ph] = true
				return nil
			}
			if ph.Offset < oldOffset+oldSize && ph.Offset+ph.FileSize > oldOffset {
				return layoutErr("unsupported overlap: PT_NOTE partially overlaps a moved SHT_NOTE section")
			}
		}
	}
	return nil
}

func syncPhdrToSection(ph *ProgramHeader, sh *SectionHeader) {
	ph.Offset = sh.Offset
	ph.VAddr = sh.Address
	ph.PAddr = sh.Address
	ph.FileSize = sh.Size
	ph.MemSize = sh.Size
}
