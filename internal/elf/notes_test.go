// SPDX-License-Identifier: MIT

package elf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNotesSplitsMultiSectionSegment(t *testing.T) {
	f := &File{
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_NOTE, Flags: PF_R, Offset: 100, VAddr: 1000, PAddr: 1000, FileSize: 36, MemSize: 36, Align: 4},
		},
		Sections: []*SectionHeader{
			{Name: ".note.a", Type: SHT_NOTE, Offset: 100, Size: 20, Address: 1000, AddrAlign: 4},
			{Name: ".note.b", Type: SHT_NOTE, Offset: 120, Size: 16, Address: 1020, AddrAlign: 4},
		},
	}

	require.NoError(t, f.normalizeNotes())

	require.Len(t, f.ProgramHeaders, 2)
	assert.Equal(t, uint64(100), f.ProgramHeaders[0].Offset)
	assert.Equal(t, uint64(20), f.ProgramHeaders[0].FileSize)
	assert.Equal(t, uint64(120), f.ProgramHeaders[1].Offset)
	assert.Equal(t, uint64(1020), f.ProgramHeaders[1].VAddr)
	assert.Equal(t, uint64(16), f.ProgramHeaders[1].FileSize)
}

func TestNormalizeNotesRejectsNonContiguousSections(t *testing.T) {
	f := &File{
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_NOTE, Flags: PF_R, Offset: 100, VAddr: 1000, PAddr: 1000, FileSize: 46, MemSize: 46, Align: 4},
		},
		Sections: []*SectionHeader{
			{Name: ".note.a", Type: SHT_NOTE, Offset: 100, Size: 20, Address: 1000, AddrAlign: 4},
			{Name: ".note.b", Type: SHT_NOTE, Offset: 130, Size: 16, Address: 1030, AddrAlign: 4},
		},
	}

	err := f.normalizeNotes()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLayout))
}

func TestNormalizeNotesIgnoresSegmentsWithoutNoteSections(t *testing.T) {
	f := &File{
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_LOAD, Flags: PF_R, Offset: 0, VAddr: 0, PAddr: 0, FileSize: 100, MemSize: 100, Align: 0x1000},
		},
		Sections: []*SectionHeader{
			{Name: ".text", Type: SHT_PROGBITS, Offset: 0, Size: 100},
		},
	}

	require.NoError(t, f.normalizeNotes())
	assert.Len(t, f.ProgramHeaders, 1)
}
