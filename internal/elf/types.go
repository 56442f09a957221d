// SPDX-License-Identifier: MIT

package elf

// File is one ELF binary being rewritten in place. It owns the mutable file
// image exclusively for the lifetime of a rewrite; ProgramHeaders and
// Sections are copies decoded from that image, written back into the image
// only during header rewriting (see headers.go).
type File struct {
	Class  FileClass
	Endian FileEndian

	HeaderVersion uint8
	ABI           uint8
	ABIVersion    uint8

	Type    FileType
	Machine MachineType
	Version uint32
	Entry   uint64
	Flags   uint32

	phOff      uint64
	shOff      uint64
	phEntSize  uint16
	phNum      uint16
	shEntSize  uint16
	shNum      uint16
	shStrIndex uint16

	buf *ByteBuffer

	ProgramHeaders []*ProgramHeader
	Sections       []*SectionHeader

	// sectionsByOldIndex captures, at parse time, the section name that
	// occupied each SHT index in the input file. Frozen after parse; used
	// to re-translate st_shndx once the SHT has been reordered.
	sectionsByOldIndex []string

	// isExecutable is true iff the input carries a PT_INTERP segment.
	isExecutable bool

	// changed is set once any semantic edit has been queued. Never reset.
	changed bool

	edits *sectionEditTable

	// pageSize is the alignment driving all new-segment placement; either
	// derived from Machine or forced by the caller.
	pageSize uint64

	// sortHeaders controls whether the PHT/SHT are sorted by offset after
	// rewriting. Defaults to true; --no-sort disables it.
	sortHeaders bool

	// clobberOldSections controls whether vacated on-disk bytes are
	// overwritten with 'Z' before new content is written, to surface
	// stale references. Defaults to true.
	clobberOldSections bool

	warnf func(format string, args ...any)
}

// ProgramHeader is a loadable or informational segment descriptor.
type ProgramHeader struct {
	Type     ProgramHeaderType
	Flags    ProgramHeaderFlag
	Offset   uint64
	VAddr    uint64
	PAddr    uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

// SectionHeader is a named region of the file.
type SectionHeader struct {
	Name      string
	nameOff   uint32
	Type      SectionHeaderType
	Flags     SectionHeaderFlag
	Address   uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntrySize uint64
}

// Symbol mirrors one Elf32_Sym/Elf64_Sym entry as decoded in memory; fields
// are always the 64-bit-wide superset regardless of the file's class.
type Symbol struct {
	NameOff uint32
	Info    uint8
	Other   uint8
	Shndx   uint16
	Value   uint64
	Size    uint64
}

func (s Symbol) Type() SymbolType       { return SymbolType(s.Info & 0xF) }
func (s Symbol) Binding() SymbolBinding { return SymbolBinding(s.Info >> 4) }

// DynEntry mirrors one Elf32_Dyn/Elf64_Dyn entry.
type DynEntry struct {
	Tag DynamicTag
	Val uint64
}

// Verneed mirrors one Elf32_Verneed/Elf64_Verneed record. The rewrite
// engine only ever reads vn_next to walk the list and vn_file to rewrite
// it; individual Vernaux entries are left untouched.
type Verneed struct {
	Version uint16
	Cnt     uint16
	FileOff uint32 // vn_file: offset into the associated string table
	AuxOff  uint32
	Next    uint32 // vn_next, byte offset to next Verneed, 0 if last
}
