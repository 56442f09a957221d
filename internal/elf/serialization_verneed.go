// SPDX-License-Identifier: MIT

package elf

// verneedSize is sizeof(Elf32_Verneed)/sizeof(Elf64_Verneed); this record's
// layout does not change between classes, only its embedding file's class.
const verneedSize = 16

func (f *File) readVerneedAt(offset int) (*Verneed, error) {
	b := f.buf
	version, e1 := b.ReadU16(offset)
	cnt, e2 := b.ReadU16(offset + 2)
	fileOff, e3 := b.ReadU32(offset + 4)
	auxOff, e4 := b.ReadU32(offset + 8)
	next, e5 := b.ReadU32(offset + 12)
	if err := firstErr(e1, e2, e3, e4, e5); err != nil {
		return nil, err
	}
	return &Verneed{Version: version, Cnt: cnt, FileOff: fileOff, AuxOff: auxOff, Next: next}, nil
}

func (f *File) writeVerneedFileOff(offset int, fileOff uint32) error {
	return f.buf.WriteU32(offset+4, fileOff)
}
