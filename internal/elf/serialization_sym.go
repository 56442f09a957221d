// SPDX-License-Identifier: MIT

package elf

// symSize32/symSize64 are sizeof(Elf32_Sym)/sizeof(Elf64_Sym).
const (
	symSize32 = 16
	symSize64 = 24
)

func (f *File) sizeSym() int {
	if f.Class == ELFCLASS64 {
		return symSize64
	}
	return symSize32
}

func (f *File) readSymAt(offset int) (*Symbol, error) {
	b := f.buf
	s := &Symbol{}

	if f.Class == ELFCLASS64 {
		name, e1 := b.ReadU32(offset)
		info, e2 := b.ReadU8(offset + 4)
		other, e3 := b.ReadU8(offset + 5)
		shndx, e4 := b.ReadU16(offset + 6)
		value, e5 := b.ReadU64(offset + 8)
		size, e6 := b.ReadU64(offset + 16)
		if err := firstErr(e1, e2, e3, e4, e5, e6); err != nil {
			return nil, err
		}
		s.NameOff, s.Info, s.Other, s.Shndx, s.Value, s.Size = name, info, other, shndx, value, size
	} else {
		name, e1 := b.ReadU32(offset)
		value, e2 := b.ReadU32(offset + 4)
		size, e3 := b.ReadU32(offset + 8)
		info, e4 := b.ReadU8(offset + 12)
		other, e5 := b.ReadU8(offset + 13)
		shndx, e6 := b.ReadU16(offset + 14)
		if err := firstErr(e1, e2, e3, e4, e5, e6); err != nil {
			return nil, err
		}
		s.NameOff, s.Info, s.Other, s.Shndx = name, info, other, shndx
		s.Value, s.Size = uint64(value), uint64(size)
	}
	return s, nil
}

func (f *File) writeSymAt(offset int, s *Symbol) error {
	b := f.buf
	if f.Class == ELFCLASS64 {
		e1 := b.WriteU32(offset, s.NameOff)
		e2 := b.WriteU8(offset+4, s.Info)
		e3 := b.WriteU8(offset+5, s.Other)
		e4 := b.WriteU16(offset+6, s.Shndx)
		e5 := b.WriteU64(offset+8, s.Value)
		e6 := b.WriteU64(offset+16, s.Size)
		return firstErr(e1, e2, e3, e4, e5, e6)
	}
	e1 := b.WriteU32(offset, s.NameOff)
	e2 := b.WriteU32(offset+4, uint32(s.Value))
	e3 := b.WriteU32(offset+8, uint32(s.Size))
	e4 := b.WriteU8(offset+12, s.Info)
	e5 := b.WriteU8(offset+13, s.Other)
	e6 := b.WriteU16(offset+14, s.Shndx)
	return firstErr(e1, e2, e3, e4, e5, e6)
}
