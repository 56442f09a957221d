// SPDX-License-Identifier: MIT

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyLoadsDisjointDetectsOverlap(t *testing.T) {
	raw := make([]byte, 1000)
	f := &File{
		buf: newByteBuffer(raw, ELFDATA2LSB),
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_LOAD, Offset: 0, FileSize: 500},
			{Type: PT_LOAD, Offset: 400, FileSize: 200},
		},
	}

	err := f.verifyLoadsDisjoint()
	require.Error(t, err)
}

func TestVerifyLoadsDisjointAcceptsContiguousLoads(t *testing.T) {
	raw := make([]byte, 1000)
	f := &File{
		buf: newByteBuffer(raw, ELFDATA2LSB),
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_LOAD, Offset: 0, FileSize: 500},
			{Type: PT_LOAD, Offset: 500, FileSize: 500},
			{Type: PT_DYNAMIC, Offset: 10, FileSize: 990},
		},
	}

	assert.NoError(t, f.verifyLoadsDisjoint())
}

func TestVerifyLoadsDisjointIgnoresEmptyLoads(t *testing.T) {
	raw := make([]byte, 1000)
	f := &File{
		buf: newByteBuffer(raw, ELFDATA2LSB),
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_LOAD, Offset: 0, FileSize: 500},
			{Type: PT_LOAD, Offset: 0, FileSize: 0},
		},
	}

	assert.NoError(t, f.verifyLoadsDisjoint())
}

func TestCoveringLoadFindsContainingSegment(t *testing.T) {
	f := &File{
		ProgramHeaders: []*ProgramHeader{
			{Type: PT_LOAD, Offset: 0, VAddr: 0x1000, FileSize: 100},
			{Type: PT_LOAD, Offset: 100, VAddr: 0x2000, FileSize: 100},
			{Type: PT_DYNAMIC, Offset: 50, FileSize: 10},
		},
	}

	assert.Same(t, f.ProgramHeaders[0], f.coveringLoad(50))
	assert.Same(t, f.ProgramHeaders[1], f.coveringLoad(150))
	assert.Nil(t, f.coveringLoad(300))
}
