// SPDX-License-Identifier: MIT

package elf

// Options configures a single rewrite run. All fields are read-only once
// the rewrite starts; the engine never consults ambient global state.
type Options struct {
	// ForcedPageSize overrides defaultPageSize(Machine) when non-zero.
	ForcedPageSize uint64

	// NoSort disables the PHT/SHT offset-sort step in the header rewriter.
	NoSort bool

	// NoClobberOldSections skips overwriting vacated on-disk bytes with 'Z'
	// before writing replacement content. Off by default, so vacated bytes
	// are clobbered unless a caller opts out.
	NoClobberOldSections bool

	// Warnf receives non-fatal diagnostics (§7 second half). May be nil.
	Warnf func(format string, args ...any)
}

// ParseFile validates and decodes an ELF image, producing an engine ready
// for RenameNeeded. data is retained and mutated in place; callers must not
// reuse it concurrently.
func ParseFile(data []byte, opts Options) (*File, error) {
	if len(data) < ehdrSize32 {
		return nil, malformed("file too small for an ELF32 header")
	}

	provisional := newByteBuffer(data, ELFDATA2LSB)
	f, err := readEhdr(provisional)
	if err != nil {
		return nil, err
	}

	if f.Type != ET_EXEC && f.Type != ET_DYN {
		return nil, malformed("e_type is neither ET_EXEC nor ET_DYN")
	}
	if f.phEntSize != uint16(f.sizePhdr()) {
		return nil, malformed("e_phentsize does not match this class's Phdr size")
	}
	if f.shEntSize != uint16(f.sizeShdr()) {
		return nil, malformed("e_shentsize does not match this class's Shdr size")
	}
	if f.shNum == 0 {
		return nil, malformed("e_shnum is zero")
	}
	if f.shStrIndex >= f.shNum {
		return nil, malformed("e_shstrndx out of range")
	}

	if err := checkTableBounds(f.buf, f.phOff, uint64(f.phNum), uint64(f.phEntSize)); err != nil {
		return nil, err
	}
	if err := checkTableBounds(f.buf, f.shOff, uint64(f.shNum), uint64(f.shEntSize)); err != nil {
		return nil, err
	}

	f.ProgramHeaders = make([]*ProgramHeader, 0, f.phNum)
	for i := 0; i < int(f.phNum); i++ {
		ph, err := f.readPhdrAt(int(f.phOff) + i*f.sizePhdr())
		if err != nil {
			return nil, err
		}
		f.ProgramHeaders = append(f.ProgramHeaders, ph)
		if ph.Type == PT_INTERP {
			f.isExecutable = true
		}
	}

	f.Sections = make([]*SectionHeader, 0, f.shNum)
	for i := 0; i < int(f.shNum); i++ {
		sh, err := f.readShdrAt(int(f.shOff) + i*f.sizeShdr())
		if err != nil {
			return nil, err
		}
		f.Sections = append(f.Sections, sh)
	}

	strtab := f.Sections[f.shStrIndex]
	if err := checkRange(f.buf, strtab.Offset, strtab.Size); err != nil {
		return nil, malformed("section name string table out of bounds")
	}
	if strtab.Size == 0 {
		return nil, malformed("section name string table is empty")
	}
	last, err := f.buf.ReadU8(int(strtab.Offset + strtab.Size - 1))
	if err != nil || last != 0 {
		return nil, malformed("section name string table is not NUL-terminated")
	}

	f.sectionsByOldIndex = make([]string, len(f.Sections))
	for i, sh := range f.Sections {
		name, err := f.buf.CString(int(strtab.Offset + uint64(sh.nameOff)))
		if err != nil {
			return nil, malformed("section name offset out of range")
		}
		sh.Name = name
		f.sectionsByOldIndex[i] = name
	}

	f.pageSize = opts.ForcedPageSize
	if f.pageSize == 0 {
		f.pageSize = defaultPageSize(f.Machine)
	}
	f.sortHeaders = !opts.NoSort
	f.clobberOldSections = !opts.NoClobberOldSections
	if opts.Warnf != nil {
		f.warnf = opts.Warnf
	} else {
		f.warnf = func(string, ...any) {}
	}
	f.edits = newSectionEditTable(f)

	return f, nil
}

func checkTableBounds(buf *ByteBuffer, off, num, entsize uint64) error {
	if num == 0 {
		return nil
	}
	total := num * entsize
	if total/entsize != num {
		return malformed("header table size overflows")
	}
	end := off + total
	if end < off || end > uint64(buf.Len()) {
		return malformed("header table out of bounds")
	}
	return nil
}

func checkRange(buf *ByteBuffer, off, size uint64) error {
	end := off + size
	if end < off || end > uint64(buf.Len()) {
		return malformed("range out of bounds")
	}
	return nil
}

// SectionByName returns the first section with the given name, or nil.
func (f *File) SectionByName(name string) *SectionHeader {
	for _, sh := range f.Sections {
		if sh.Name == name {
			return sh
		}
	}
	return nil
}

// sectionIndex returns the current SHT index of sh, or -1.
func (f *File) sectionIndex(sh *SectionHeader) int {
	for i, s := range f.Sections {
		if s == sh {
			return i
		}
	}
	return -1
}

// IsExecutable reports whether the input carries a PT_INTERP segment,
// selecting executable-mode layout over library-mode.
func (f *File) IsExecutable() bool { return f.isExecutable }

// Changed reports whether any semantic edit has been queued so far.
func (f *File) Changed() bool { return f.changed }

// Bytes returns the current (possibly rewritten) file image.
func (f *File) Bytes() []byte { return f.buf.Bytes() }
