// SPDX-License-Identifier: MIT

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockRangeEntry struct {
	offset uint64
	size   uint64
}

func (r mockRangeEntry) Offset() uint64 { return r.offset }
func (r mockRangeEntry) Size() uint64   { return r.size }

func TestSpanClaimAcceptsDisjointRanges(t *testing.T) {
	s := NewSpan[mockRangeEntry](0, 1000)
	assert.True(t, s.Claim(mockRangeEntry{offset: 0, size: 64}))
	assert.True(t, s.Claim(mockRangeEntry{offset: 64, size: 32}))
	assert.True(t, s.Claim(mockRangeEntry{offset: 500, size: 500}))
}

func TestSpanClaimRejectsOverlap(t *testing.T) {
	s := NewSpan[mockRangeEntry](0, 1000)
	assert.True(t, s.Claim(mockRangeEntry{offset: 0, size: 64}))
	assert.False(t, s.Claim(mockRangeEntry{offset: 32, size: 64}), "overlapping claim must be rejected")
	assert.False(t, s.Claim(mockRangeEntry{offset: 0, size: 1}), "re-claiming an already-claimed start must be rejected")
}

func TestSpanClaimRejectsOutOfBounds(t *testing.T) {
	s := NewSpan[mockRangeEntry](100, 100)
	assert.False(t, s.Claim(mockRangeEntry{offset: 50, size: 64}), "claim starting before the span must be rejected")
	assert.False(t, s.Claim(mockRangeEntry{offset: 150, size: 64}), "claim running past the span end must be rejected")
	assert.True(t, s.Claim(mockRangeEntry{offset: 100, size: 100}), "claim exactly covering the span must be accepted")
}

func TestSpanClaimAcceptsOutOfOrderInsertion(t *testing.T) {
	s := NewSpan[mockRangeEntry](0, 1000)
	assert.True(t, s.Claim(mockRangeEntry{offset: 500, size: 100}))
	assert.True(t, s.Claim(mockRangeEntry{offset: 0, size: 100}))
	assert.True(t, s.Claim(mockRangeEntry{offset: 100, size: 400}))
	assert.False(t, s.Claim(mockRangeEntry{offset: 99, size: 2}), "claim straddling an earlier claim's boundary must be rejected")
}
