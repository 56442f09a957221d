// SPDX-License-Identifier: MIT

package elf

// phdrSize32/phdrSize64 are sizeof(Elf32_Phdr)/sizeof(Elf64_Phdr).
const (
	phdrSize32 = 32
	phdrSize64 = 56
)

func (f *File) sizePhdr() int {
	if f.Class == ELFCLASS64 {
		return phdrSize64
	}
	return phdrSize32
}

func (f *File) readPhdrAt(offset int) (*ProgramHeader, error) {
	b := f.buf
	ph := &ProgramHeader{}

	if f.Class == ELFCLASS64 {
		typ, err1 := b.ReadU32(offset)
		flags, err2 := b.ReadU32(offset + 4)
		off, err3 := b.ReadU64(offset + 8)
		vaddr, err4 := b.ReadU64(offset + 16)
		paddr, err5 := b.ReadU64(offset + 24)
		filesz, err6 := b.ReadU64(offset + 32)
		memsz, err7 := b.ReadU64(offset + 40)
		align, err8 := b.ReadU64(offset + 48)
		if err := firstErr(err1, err2, err3, err4, err5, err6, err7, err8); err != nil {
			return nil, err
		}
		ph.Type = ProgramHeaderType(typ)
		ph.Flags = ProgramHeaderFlag(flags)
		ph.Offset, ph.VAddr, ph.PAddr = off, vaddr, paddr
		ph.FileSize, ph.MemSize, ph.Align = filesz, memsz, align
	} else {
		typ, err1 := b.ReadU32(offset)
		off, err2 := b.ReadU32(offset + 4)
		vaddr, err3 := b.ReadU32(offset + 8)
		paddr, err4 := b.ReadU32(offset + 12)
		filesz, err5 := b.ReadU32(offset + 16)
		memsz, err6 := b.ReadU32(offset + 20)
		flags, err7 := b.ReadU32(offset + 24)
		align, err8 := b.ReadU32(offset + 28)
		if err := firstErr(err1, err2, err3, err4, err5, err6, err7, err8); err != nil {
			return nil, err
		}
		ph.Type = ProgramHeaderType(typ)
		ph.Flags = ProgramHeaderFlag(flags)
		ph.Offset, ph.VAddr, ph.PAddr = uint64(off), uint64(vaddr), uint64(paddr)
		ph.FileSize, ph.MemSize, ph.Align = uint64(filesz), uint64(memsz), uint64(align)
	}
	return ph, nil
}

func (f *File) writePhdrAt(offset int, ph *ProgramHeader) error {
	b := f.buf
	if f.Class == ELFCLASS64 {
		e1 := b.WriteU32(offset, uint32(ph.Type))
		e2 := b.WriteU32(offset+4, uint32(ph.Flags))
		e3 := b.WriteU64(offset+8, ph.Offset)
		e4 := b.WriteU64(offset+16, ph.VAddr)
		e5 := b.WriteU64(offset+24, ph.PAddr)
		e6 := b.WriteU64(offset+32, ph.FileSize)
		e7 := b.WriteU64(offset+40, ph.MemSize)
		e8 := b.WriteU64(offset+48, ph.Align)
		return firstErr(e1, e2, e3, e4, e5, e6, e7, e8)
	}
	e1 := b.WriteU32(offset, uint32(ph.Type))
	e2 := b.WriteU32(offset+4, uint32(ph.Offset))
	e3 := b.WriteU32(offset+8, uint32(ph.VAddr))
	e4 := b.WriteU32(offset+12, uint32(ph.PAddr))
	e5 := b.WriteU32(offset+16, uint32(ph.FileSize))
	e6 := b.WriteU32(offset+20, uint32(ph.MemSize))
	e7 := b.WriteU32(offset+24, uint32(ph.Flags))
	e8 := b.WriteU32(offset+28, uint32(ph.Align))
	return firstErr(e1, e2, e3, e4, e5, e6, e7, e8)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
