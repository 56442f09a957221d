// SPDX-License-Identifier: MIT

package elf

// layoutExecutable implements §4.5.1: executable-mode placement, used when
// e_type == ET_EXEC. Space is reserved at the start of the file by
// shifting later content forward by whole pages, then the enlarged/moved
// sections are placed immediately after the program-header table.
func (f *File) layoutExecutable() error {
	if f.sortHeaders {
		f.sortSectionsByOffset()
	}

	lastReplaced := -1
	for i, sh := range f.Sections {
		if f.edits.has(sh.Name) {
			lastReplaced = i
		}
	}

	var startOffset, startAddr uint64
	stopped := false
	for i := 1; i <= lastReplaced && i < len(f.Sections); i++ {
		sh := f.Sections[i]
		if f.edits.has(sh.Name) {
			continue
		}
		prevIsDynstr := i > 0 && f.Sections[i-1].Name == ".dynstr"
		if !canReplace(sh) || prevIsDynstr {
			startOffset, startAddr = sh.Offset, sh.Address
			lastReplaced = i - 1
			stopped = true
			break
		}
		if _, err := f.edits.replace(sh.Name, int(sh.Size)); err != nil {
			return err
		}
	}
	if !stopped {
		next := lastReplaced + 1
		if next < len(f.Sections) {
			startOffset, startAddr = f.Sections[next].Offset, f.Sections[next].Address
		} else {
			startOffset, startAddr = uint64(f.buf.Len()), 0
		}
	}

	if f.shOff < startOffset {
		newShtOff := uint64(f.buf.Len())
		f.buf.Resize(int(newShtOff) + len(f.Sections)*f.sizeShdr())
		f.shOff = newShtOff
		if f.sortHeaders {
			f.sortSectionsByOffset()
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

	headerBlock := uint64(f.sizeEhdr()) + uint64(len(f.ProgramHeaders)*f.sizePhdr())
	var neededSpace uint64 = headerBlock
	for _, name := range f.edits.names(f) {
		neededSpace += roundUp(uint64(len(f.edits.get(name))), sectionAlignment)
	}

	if neededSpace > startOffset {
		deficit := neededSpace - startOffset + uint64(f.sizePhdr())
		extraPages := roundUp(deficit, f.pageSize)/f.pageSize + 1
		if startAddr < extraPages*f.pageSize {
			return layoutErr("virtual-address underrun: executable shift would push the first load page below 0")
		}
		if err := f.shiftFile(extraPages, startOffset); err != nil {
			return err
		}
		startOffset += extraPages * f.pageSize
		headerBlock = uint64(f.sizeEhdr()) + uint64(len(f.ProgramHeaders)*f.sizePhdr())
	}

	if ph := f.coveringLoad(headerBlock); ph != nil && ph.FileSize < neededSpace {
		ph.FileSize = neededSpace
		ph.MemSize = neededSpace
	}

	if err := f.buf.Fill(int(headerBlock), int(startOffset-headerBlock), 0); err != nil {
		return err
	}

	curOff := headerBlock
	firstPage := startAddr - startOffset
	if err := f.flushEdits(&curOff, startAddr, startOffset); err != nil {
		return err
	}

	return f.rewriteHeaders(firstPage + f.phOff)
}
