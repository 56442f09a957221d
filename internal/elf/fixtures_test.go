// SPDX-License-Identifier: MIT

package elf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newShstrtab builds a section-name string table and returns it alongside
// the name-offset each entry landed at, mirroring what a linker emits for
// .shstrtab.
func newShstrtab(names []string) ([]byte, map[string]uint32) {
	content := []byte{0}
	offsets := make(map[string]uint32, len(names))
	for _, n := range names {
		offsets[n] = uint32(len(content))
		content = append(content, []byte(n)...)
		content = append(content, 0)
	}
	return content, offsets
}

// fixtureSection describes one section to bake into a synthetic image.
// Offset/Address are caller-chosen so tests keep full control over layout;
// Name is resolved against a pre-built shstrtab offset table.
type fixtureSection struct {
	name      string
	typ       SectionHeaderType
	flags     SectionHeaderFlag
	addr      uint64
	offset    uint64
	size      uint64
	link      uint32
	info      uint32
	addralign uint64
	entsize   uint64
	data      []byte
}

// buildFixture assembles a syntactically valid ELF64 little-endian image by
// driving the package's own header serializers, so tests exercise the real
// encode path instead of a hand-copied byte literal. totalSize must be large
// enough to hold every phdr/shdr/section payload at its declared offset.
func buildFixture(t testing.TB, etype FileType, machine MachineType, phOff, shOff uint64, phdrs []*ProgramHeader, sections []fixtureSection, nameOffsets map[string]uint32, totalSize int) []byte {
	t.Helper()

	raw := make([]byte, totalSize)
	buf := newByteBuffer(raw, ELFDATA2LSB)
	f := &File{
		Class:         ELFCLASS64,
		Endian:        ELFDATA2LSB,
		HeaderVersion: 1,
		buf:           buf,
		Type:          etype,
		Machine:       machine,
		phOff:         phOff,
		shOff:         shOff,
	}
	f.phEntSize = uint16(f.sizePhdr())
	f.shEntSize = uint16(f.sizeShdr())
	f.phNum = uint16(len(phdrs))
	f.shNum = uint16(len(sections))

	for i, ph := range phdrs {
		require.NoError(t, f.writePhdrAt(int(phOff)+i*f.sizePhdr(), ph))
	}

	for i, fs := range sections {
		sh := &SectionHeader{
			nameOff:   nameOffsets[fs.name],
			Type:      fs.typ,
			Flags:     fs.flags,
			Address:   fs.addr,
			Offset:    fs.offset,
			Size:      fs.size,
			Link:      fs.link,
			Info:      fs.info,
			AddrAlign: fs.addralign,
			EntrySize: fs.entsize,
		}
		require.NoError(t, f.writeShdrAt(int(shOff)+i*f.sizeShdr(), sh))
		if len(fs.data) > 0 {
			require.NoError(t, buf.WriteBytes(int(fs.offset), fs.data))
		}
		if fs.name == ".shstrtab" {
			f.shStrIndex = uint16(i)
		}
	}

	require.NoError(t, f.writeEhdr())
	return raw
}

// dynBytes encodes a sequence of Elf64_Dyn entries.
func dynBytes(entries []DynEntry) []byte {
	out := make([]byte, 0, len(entries)*16)
	buf := newByteBuffer(make([]byte, len(entries)*16), ELFDATA2LSB)
	for i, d := range entries {
		buf.WriteU64(i*16, uint64(d.Tag))
		buf.WriteU64(i*16+8, d.Val)
	}
	out = append(out, buf.Bytes()...)
	return out
}
