// SPDX-License-Identifier: MIT

package elf

// ehdrSize32/ehdrSize64 are sizeof(Elf32_Ehdr)/sizeof(Elf64_Ehdr), identification
// bytes included.
const (
	ehdrSize32 = 52
	ehdrSize64 = 64
)

func (f *File) sizeEhdr() int {
	if f.Class == ELFCLASS64 {
		return ehdrSize64
	}
	return ehdrSize32
}

// readEhdr validates and decodes the ELF header at offset 0. It is the
// first thing the parser does and the only place e_ident is inspected.
func readEhdr(buf *ByteBuffer) (*File, error) {
	if buf.Len() < ehdrSize32 {
		return nil, malformed("file too small for an ELF32 header")
	}

	ident, err := buf.ReadBytes(0, 16)
	if err != nil {
		return nil, malformed("cannot read e_ident")
	}
	if ident[0] != 0x7F || ident[1] != 'E' || ident[2] != 'L' || ident[3] != 'F' {
		return nil, malformed("bad magic number")
	}
	if ident[6] != 1 {
		return nil, malformed("unsupported EI_VERSION")
	}

	class := FileClass(ident[4])
	if class != ELFCLASS32 && class != ELFCLASS64 {
		return nil, malformed("unsupported EI_CLASS")
	}
	endian := FileEndian(ident[5])
	if endian != ELFDATA2LSB && endian != ELFDATA2MSB {
		return nil, malformed("unsupported EI_DATA")
	}

	// The caller seeded buf with a provisional byte order before EI_DATA
	// was known; rebuild it now, per §9's "derive endianness from EI_DATA".
	buf = newByteBuffer(buf.Bytes(), endian)

	f := &File{
		Class:         class,
		Endian:        endian,
		HeaderVersion: ident[6],
		ABI:           ident[7],
		ABIVersion:    ident[8],
		buf:           buf,
	}

	if class == ELFCLASS64 {
		if buf.Len() < ehdrSize64 {
			return nil, malformed("file too small for an ELF64 header")
		}
		typ, _ := buf.ReadU16(16)
		machine, _ := buf.ReadU16(18)
		version, _ := buf.ReadU32(20)
		entry, _ := buf.ReadU64(24)
		phOff, _ := buf.ReadU64(32)
		shOff, _ := buf.ReadU64(40)
		flags, _ := buf.ReadU32(48)
		phentsize, _ := buf.ReadU16(54)
		phnum, _ := buf.ReadU16(56)
		shentsize, _ := buf.ReadU16(58)
		shnum, _ := buf.ReadU16(60)
		shstrndx, _ := buf.ReadU16(62)
		f.Type = FileType(typ)
		f.Machine = MachineType(machine)
		f.Version = version
		f.Entry = entry
		f.phOff, f.shOff = phOff, shOff
		f.Flags = flags
		f.phEntSize, f.phNum = phentsize, phnum
		f.shEntSize, f.shNum = shentsize, shnum
		f.shStrIndex = shstrndx
	} else {
		typ, _ := buf.ReadU16(16)
		machine, _ := buf.ReadU16(18)
		version, _ := buf.ReadU32(20)
		entry, _ := buf.ReadU32(24)
		phOff, _ := buf.ReadU32(28)
		shOff, _ := buf.ReadU32(32)
		flags, _ := buf.ReadU32(36)
		phentsize, _ := buf.ReadU16(42)
		phnum, _ := buf.ReadU16(44)
		shentsize, _ := buf.ReadU16(46)
		shnum, _ := buf.ReadU16(48)
		shstrndx, _ := buf.ReadU16(50)
		f.Type = FileType(typ)
		f.Machine = MachineType(machine)
		f.Version = version
		f.Entry = uint64(entry)
		f.phOff, f.shOff = uint64(phOff), uint64(shOff)
		f.Flags = flags
		f.phEntSize, f.phNum = phentsize, phnum
		f.shEntSize, f.shNum = shentsize, shnum
		f.shStrIndex = shstrndx
	}

	return f, nil
}

// writeEhdr serialises the current header fields back into the buffer. It
// is called last, once e_phoff/e_shoff/e_phnum/e_shnum hold their final
// post-layout values.
func (f *File) writeEhdr() error {
	b := f.buf
	ident := []byte{0x7F, 'E', 'L', 'F', byte(f.Class), byte(f.Endian), f.HeaderVersion, f.ABI, f.ABIVersion, 0, 0, 0, 0, 0, 0, 0}
	if err := b.WriteBytes(0, ident); err != nil {
		return err
	}

	if f.Class == ELFCLASS64 {
		e1 := b.WriteU16(16, uint16(f.Type))
		e2 := b.WriteU16(18, uint16(f.Machine))
		e3 := b.WriteU32(20, f.Version)
		e4 := b.WriteU64(24, f.Entry)
		e5 := b.WriteU64(32, f.phOff)
		e6 := b.WriteU64(40, f.shOff)
		e7 := b.WriteU32(48, f.Flags)
		e8 := b.WriteU16(52, uint16(ehdrSize64))
		e9 := b.WriteU16(54, f.phEntSize)
		e10 := b.WriteU16(56, f.phNum)
		e11 := b.WriteU16(58, f.shEntSize)
		e12 := b.WriteU16(60, f.shNum)
		e13 := b.WriteU16(62, f.shStrIndex)
		return firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10, e11, e12, e13)
	}
	e1 := b.WriteU16(16, uint16(f.Type))
	e2 := b.WriteU16(18, uint16(f.Machine))
	e3 := b.WriteU32(20, f.Version)
	e4 := b.WriteU32(24, uint32(f.Entry))
	e5 := b.WriteU32(28, uint32(f.phOff))
	e6 := b.WriteU32(32, uint32(f.shOff))
	e7 := b.WriteU32(36, f.Flags)
	e8 := b.WriteU16(40, uint16(ehdrSize32))
	e9 := b.WriteU16(42, f.phEntSize)
	e10 := b.WriteU16(44, f.phNum)
	e11 := b.WriteU16(46, f.shEntSize)
	e12 := b.WriteU16(48, f.shNum)
	e13 := b.WriteU16(50, f.shStrIndex)
	return firstErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10, e11, e12, e13)
}
