// SPDX-License-Identifier: MIT

// Package layout tracks the set of PT_LOAD/section byte ranges claimed so
// far within a file image, rejecting a new claim whose range falls outside
// the tracked extent or overlaps one already claimed.
//
// Unlike a linker laying out fresh output, this rewriter never needs to
// find a free byte range for something to live in: every PT_LOAD and
// section offset here is either the one it already had on disk or one the
// layout planner computed directly from page/alignment arithmetic. The
// only question this package answers is "does this collide with something
// already placed" — there is no gap search.
package layout

import "slices"

// RangePlaceable is one thing occupying a byte range: a PT_LOAD segment, a
// relocated section, or any other extent the caller wants checked for
// overlap against others already claimed.
type RangePlaceable interface {
	Offset() uint64
	Size() uint64
}

// Span holds the set of entries claimed so far within [offset, offset+size),
// kept sorted by offset so a new claim's neighbours are found by binary
// search instead of a linear scan of every prior entry.
type Span[T RangePlaceable] struct {
	offset  uint64
	size    uint64
	entries []T
}

func NewSpan[T RangePlaceable](offset, size uint64) *Span[T] {
	return &Span[T]{offset: offset, size: size}
}

func (s *Span[T]) Offset() uint64 { return s.offset }
func (s *Span[T]) Size() uint64   { return s.size }

// Claim records entry at its own declared Offset()/Size(). It fails
// without mutating the span if entry's range runs outside [offset,
// offset+size), is degenerate (end before start, from a size large enough
// to overflow), or overlaps an entry claimed earlier.
func (s *Span[T]) Claim(entry T) bool {
	start := entry.Offset()
	end := start + entry.Size()
	if end < start || start < s.offset || end > s.offset+s.size {
		return false
	}

	i, found := slices.BinarySearchFunc(s.entries, start, func(e T, target uint64) int {
		switch {
		case e.Offset() < target:
			return -1
		case e.Offset() > target:
			return 1
		default:
			return 0
		}
	})
	if found {
		return false
	}
	if i > 0 {
		prev := s.entries[i-1]
		if prev.Offset()+prev.Size() > start {
			return false
		}
	}
	if i < len(s.entries) && s.entries[i].Offset() < end {
		return false
	}

	s.entries = slices.Insert(s.entries, i, entry)
	return true
}
