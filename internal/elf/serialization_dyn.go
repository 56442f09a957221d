// SPDX-License-Identifier: MIT

package elf

// dynSize32/dynSize64 are sizeof(Elf32_Dyn)/sizeof(Elf64_Dyn).
const (
	dynSize32 = 8
	dynSize64 = 16
)

func (f *File) sizeDyn() int {
	if f.Class == ELFCLASS64 {
		return dynSize64
	}
	return dynSize32
}

func (f *File) readDynAt(offset int) (*DynEntry, error) {
	b := f.buf
	if f.Class == ELFCLASS64 {
		tag, e1 := b.ReadU64(offset)
		val, e2 := b.ReadU64(offset + 8)
		if err := firstErr(e1, e2); err != nil {
			return nil, err
		}
		return &DynEntry{Tag: DynamicTag(tag), Val: val}, nil
	}
	tag, e1 := b.ReadU32(offset)
	val, e2 := b.ReadU32(offset + 4)
	if err := firstErr(e1, e2); err != nil {
		return nil, err
	}
	return &DynEntry{Tag: DynamicTag(int32(tag)), Val: uint64(val)}, nil
}

func (f *File) writeDynAt(offset int, d *DynEntry) error {
	b := f.buf
	if f.Class == ELFCLASS64 {
		e1 := b.WriteU64(offset, uint64(d.Tag))
		e2 := b.WriteU64(offset+8, d.Val)
		return firstErr(e1, e2)
	}
	e1 := b.WriteU32(offset, uint32(d.Tag))
	e2 := b.WriteU32(offset+4, uint32(d.Val))
	return firstErr(e1, e2)
}
