// SPDX-License-Identifier: MIT

package elf

// layoutLibrary implements §4.5.2: library-mode placement, used when
// e_type == ET_DYN. A new PT_LOAD-mapped region is appended at the end of
// the file (or the last writable PT_LOAD is extended) and moved sections
// are relocated there.
func (f *File) layoutLibrary() error {
	var maxEnd uint64
	var maxAlign uint64 = f.pageSize
	for _, ph := range f.ProgramHeaders {
		if end := ph.VAddr + ph.MemSize; end > maxEnd {
			maxEnd = end
		}
		if ph.Align > maxAlign {
			maxAlign = ph.Align
		}
	}
	startPage := roundUp(maxEnd, maxAlign)
	alignStartPage := maxAlign

	var firstPage uint64
	for _, ph := range f.ProgramHeaders {
		if ph.Type == PT_PHDR {
			firstPage = ph.VAddr - ph.Offset
		}
	}

	estimatedPhtSize := uint64(f.sizeEhdr() + (len(f.ProgramHeaders)+countNoteSections(f)+1)*f.sizePhdr())
	relocatePht := false
	for _, sh := range f.Sections {
		if sh.Offset == 0 || sh.Offset > estimatedPhtSize {
			continue
		}
		if sh.Offset <= estimatedPhtSize {
			if !canReplace(sh) {
				relocatePht = true
			}
		}
	}
	if !relocatePht {
		for _, sh := range f.Sections {
			if sh.Offset > 0 && sh.Offset <= estimatedPhtSize && !f.edits.has(sh.Name) {
				if _, err := f.edits.replace(sh.Name, int(sh.Size)); err != nil {
					return err
				}
			}
		}
	}

	hasNoteEdit := false
	for _, name := range f.edits.names(f) {
		if sh := f.SectionByName(name); sh != nil && sh.Type == SHT_NOTE {
			hasNoteEdit = true
		}
	}
	if hasNoteEdit {
		if err := f.normalizeNotes(); err != nil {
			return err
		}
	}

	startOffset := uint64(f.buf.Len())

	var neededSpace uint64
	shtSize := uint64(len(f.Sections) * f.sizeShdr())
	neededSpace += roundUp(shtSize, sectionAlignment)
	var phtSize uint64
	if relocatePht {
		// Pessimistically budget for one more Phdr than currently exist,
		// since the no-segment-extended path below appends a new PT_LOAD
		// to cover the relocated PHT itself.
		phtSize = uint64((len(f.ProgramHeaders) + 1) * f.sizePhdr())
		neededSpace += roundUp(phtSize, sectionAlignment)
	}
	for _, name := range f.edits.names(f) {
		neededSpace += roundUp(uint64(len(f.edits.get(name))), sectionAlignment)
	}

	f.buf.Resize(int(startOffset + neededSpace + 1))

	extended := false
	if n := len(f.ProgramHeaders); n > 0 {
		last := f.ProgramHeaders[n-1]
		if last.Type == PT_LOAD && last.Flags == PF_R|PF_W &&
			last.Offset+last.FileSize == startOffset && startPage%alignStartPage == startOffset%alignStartPage {
			last.FileSize = startOffset + neededSpace - last.Offset
			last.MemSize = last.FileSize
			extended = true
		}
	}
	if !extended {
		if startPage%alignStartPage != startOffset%alignStartPage {
			return layoutErr("new PT_LOAD offset/address alignment invariant violated")
		}
		f.ProgramHeaders = append(f.ProgramHeaders, &ProgramHeader{
			Type:     PT_LOAD,
			Flags:    PF_R | PF_W,
			Offset:   startOffset,
			VAddr:    startPage,
			PAddr:    startPage,
			FileSize: neededSpace,
			MemSize:  neededSpace,
			Align:    alignStartPage,
		})
	}

	curOff := startOffset
	var lastSegAddr uint64
	if relocatePht {
		f.phOff = curOff
		lastSegAddr = startPage + (curOff - startOffset)
		curOff += roundUp(phtSize, sectionAlignment)
	}
	f.shOff = curOff
	curOff += roundUp(shtSize, sectionAlignment)

	if err := f.flushEdits(&curOff, startPage, startOffset); err != nil {
		return err
	}

	phdrAddress := firstPage + f.phOff
	if relocatePht {
		phdrAddress = lastSegAddr
	}
	return f.rewriteHeaders(phdrAddress)
}

func countNoteSections(f *File) int {
	n := 0
	for _, sh := range f.Sections {
		if sh.Type == SHT_NOTE {
			n++
		}
	}
	return n
}
