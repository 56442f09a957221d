// SPDX-License-Identifier: MIT

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeededLibrariesReadsWithoutMutating(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	original := append([]byte(nil), raw...)

	f, err := ParseFile(raw, Options{ForcedPageSize: 1})
	require.NoError(t, err)

	names, err := f.NeededLibraries()
	require.NoError(t, err)
	assert.Equal(t, []string{"libc.so.6"}, names)
	assert.False(t, f.Changed())
	assert.Equal(t, original, f.Bytes())
}

// buildRunPathFixture is a minimal ET_DYN image whose .dynamic carries a
// DT_RUNPATH entry instead of DT_NEEDED.
func buildRunPathFixture(t testing.TB) []byte {
	t.Helper()

	names := []string{".dynstr", ".dynamic", ".shstrtab"}
	shstrtab, nameOffsets := newShstrtab(names)

	dynstr := []byte("\x00/usr/lib:/lib\x00")
	dyn := dynBytes([]DynEntry{
		{Tag: DT_RUNPATH, Val: 1},
		{Tag: DT_STRTAB, Val: 176},
		{Tag: DT_STRSZ, Val: uint64(len(dynstr))},
		{Tag: DT_NULL, Val: 0},
	})

	sections := []fixtureSection{
		{name: ""},
		{name: ".dynstr", typ: SHT_STRTAB, flags: SHF_ALLOC, addr: 176, offset: 176, size: uint64(len(dynstr)), addralign: 1, data: dynstr},
		{name: ".dynamic", typ: SHT_DYNAMIC, flags: SHF_ALLOC | SHF_WRITE, addr: 192, offset: 192, size: uint64(len(dyn)), link: 1, addralign: 8, entsize: 16, data: dyn},
		{name: ".shstrtab", typ: SHT_STRTAB, offset: 256, size: uint64(len(shstrtab)), addralign: 1, data: shstrtab},
	}

	phdrs := []*ProgramHeader{
		{Type: PT_LOAD, Flags: PF_R | PF_W | PF_X, Offset: 0, VAddr: 0, PAddr: 0, FileSize: 540, MemSize: 540, Align: 1},
		{Type: PT_DYNAMIC, Flags: PF_R | PF_W, Offset: 192, VAddr: 192, PAddr: 192, FileSize: uint64(len(dyn)), MemSize: uint64(len(dyn)), Align: 1},
	}

	return buildFixture(t, ET_DYN, EM_X86_64, 64, 284, phdrs, sections, nameOffsets, 540)
}

func TestRPathReturnsRunPath(t *testing.T) {
	raw := buildRunPathFixture(t)

	f, err := ParseFile(raw, Options{ForcedPageSize: 1})
	require.NoError(t, err)

	rpath, err := f.RPath()
	require.NoError(t, err)
	assert.Equal(t, "/usr/lib:/lib", rpath)
	assert.Equal(t, []string{"/usr/lib", "/lib"}, rpathEntries(rpath))
}

func TestRPathEmptyWhenAbsent(t *testing.T) {
	raw := buildSharedObjectFixture(t)

	f, err := ParseFile(raw, Options{ForcedPageSize: 1})
	require.NoError(t, err)

	rpath, err := f.RPath()
	require.NoError(t, err)
	assert.Equal(t, "", rpath)
}
