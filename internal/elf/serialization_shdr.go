// SPDX-License-Identifier: MIT

package elf

// shdrSize32/shdrSize64 are sizeof(Elf32_Shdr)/sizeof(Elf64_Shdr).
const (
	shdrSize32 = 40
	shdrSize64 = 64
)

func (f *File) sizeShdr() int {
	if f.Class == ELFCLASS64 {
		return shdrSize64
	}
	return shdrSize32
}

func (f *File) readShdrAt(offset int) (*SectionHeader, error) {
	b := f.buf
	sh := &SectionHeader{}

	if f.Class == ELFCLASS64 {
		nameOff, e1 := b.ReadU32(offset)
		typ, e2 := b.ReadU32(offset + 4)
		flags, e3 := b.ReadU64(offset + 8)
		addr, e4 := b.ReadU64(offset + 16)
		off, e5 := b.ReadU64(offset + 24)
		size, e6 := b.ReadU64(offset + 32)
		link, e7 := b.ReadU32(offset + 40)
		info, e8 := b.ReadU32(offset + 44)
		addralign, e9 := b.ReadU64(offset + 48)
		entsize, e10 := b.ReadU64(offset + 56)
		if err := firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10); err != nil {
			return nil, err
		}
		sh.nameOff = nameOff
		sh.Type = SectionHeaderType(typ)
		sh.Flags = SectionHeaderFlag(flags)
		sh.Address, sh.Offset, sh.Size = addr, off, size
		sh.Link, sh.Info = link, info
		sh.AddrAlign, sh.EntrySize = addralign, entsize
	} else {
		nameOff, e1 := b.ReadU32(offset)
		typ, e2 := b.ReadU32(offset + 4)
		flags, e3 := b.ReadU32(offset + 8)
		addr, e4 := b.ReadU32(offset + 12)
		off, e5 := b.ReadU32(offset + 16)
		size, e6 := b.ReadU32(offset + 20)
		link, e7 := b.ReadU32(offset + 24)
		info, e8 := b.ReadU32(offset + 28)
		addralign, e9 := b.ReadU32(offset + 32)
		entsize, e10 := b.ReadU32(offset + 36)
		if err := firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10); err != nil {
			return nil, err
		}
		sh.nameOff = nameOff
		sh.Type = SectionHeaderType(typ)
		sh.Flags = SectionHeaderFlag(flags)
		sh.Address, sh.Offset, sh.Size = uint64(addr), uint64(off), uint64(size)
		sh.Link, sh.Info = link, info
		sh.AddrAlign, sh.EntrySize = uint64(addralign), uint64(entsize)
	}
	return sh, nil
}

func (f *File) writeShdrAt(offset int, sh *SectionHeader) error {
	b := f.buf
	if f.Class == ELFCLASS64 {
		e1 := b.WriteU32(offset, sh.nameOff)
		e2 := b.WriteU32(offset+4, uint32(sh.Type))
		e3 := b.WriteU64(offset+8, uint64(sh.Flags))
		e4 := b.WriteU64(offset+16, sh.Address)
		e5 := b.WriteU64(offset+24, sh.Offset)
		e6 := b.WriteU64(offset+32, sh.Size)
		e7 := b.WriteU32(offset+40, sh.Link)
		e8 := b.WriteU32(offset+44, sh.Info)
		e9 := b.WriteU64(offset+48, sh.AddrAlign)
		e10 := b.WriteU64(offset+56, sh.EntrySize)
		return firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10)
	}
	e1 := b.WriteU32(offset, sh.nameOff)
	e2 := b.WriteU32(offset+4, uint32(sh.Type))
	e3 := b.WriteU32(offset+8, uint32(sh.Flags))
	e4 := b.WriteU32(offset+12, uint32(sh.Address))
	e5 := b.WriteU32(offset+16, uint32(sh.Offset))
	e6 := b.WriteU32(offset+20, uint32(sh.Size))
	e7 := b.WriteU32(offset+24, sh.Link)
	e8 := b.WriteU32(offset+28, sh.Info)
	e9 := b.WriteU32(offset+32, uint32(sh.AddrAlign))
	e10 := b.WriteU32(offset+36, uint32(sh.EntrySize))
	return firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10)
}
