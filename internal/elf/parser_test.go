// SPDX-License-Identifier: MIT

package elf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileAcceptsMinimalSharedObject(t *testing.T) {
	raw := buildSharedObjectFixture(t)

	f, err := ParseFile(raw, Options{ForcedPageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, ET_DYN, f.Type)
	assert.False(t, f.IsExecutable())
	assert.Len(t, f.Sections, 4)
	assert.Len(t, f.ProgramHeaders, 2)
}

func TestParseFileClobberOldSectionsDefaultsOnAndIsOverridable(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	f, err := ParseFile(raw, Options{ForcedPageSize: 1})
	require.NoError(t, err)
	assert.True(t, f.clobberOldSections)

	raw = buildSharedObjectFixture(t)
	f, err = ParseFile(raw, Options{ForcedPageSize: 1, NoClobberOldSections: true})
	require.NoError(t, err)
	assert.False(t, f.clobberOldSections)
}

func TestParseFileRejectsBadMagic(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	raw[0] = 0x00

	_, err := ParseFile(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseFileRejectsTruncatedHeader(t *testing.T) {
	_, err := ParseFile(make([]byte, 10), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseFileRejectsRelocatableObjects(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	// e_type lives at offset 16, little-endian uint16. ET_REL is 1.
	raw[16], raw[17] = 1, 0

	_, err := ParseFile(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseFileRejectsShstrndxOutOfRange(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	// e_shstrndx lives at offset 62, little-endian uint16.
	raw[62], raw[63] = 0xFF, 0xFF

	_, err := ParseFile(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseFileRejectsOversizedProgramHeaderTable(t *testing.T) {
	raw := buildSharedObjectFixture(t)
	// e_phnum lives at offset 56, little-endian uint16.
	raw[56], raw[57] = 0xFF, 0xFF

	_, err := ParseFile(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseFileDetectsExecutableFromPTInterp(t *testing.T) {
	raw := buildExecutableFixture(t)
	// Retrofit PT_DYNAMIC into PT_INTERP to exercise the isExecutable flag
	// without constructing a whole new fixture; its contents are
	// irrelevant to this check.
	raw[int(64+56)] = byte(PT_INTERP)

	f, err := ParseFile(raw, Options{})
	require.NoError(t, err)
	assert.True(t, f.IsExecutable())
}
