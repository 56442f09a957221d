// SPDX-License-Identifier: MIT

package elf

// sectionEditTable accumulates pending section-content replacements by
// name. Entries are flushed (and the table cleared) by flushEdits once the
// layout planner has decided where each replaced section lands.
type sectionEditTable struct {
	f       *File
	pending map[string][]byte
	// order preserves insertion order so flush can fall back to it when a
	// name no longer resolves to a current SHT entry.
	order []string
}

func newSectionEditTable(f *File) *sectionEditTable {
	return &sectionEditTable{f: f, pending: make(map[string][]byte)}
}

// canReplace reports whether a section's content may be relocated: true
// for .interp and for any section whose type is not SHT_PROGBITS, since
// arbitrary code/data may carry absolute references that rewriting cannot
// follow.
func canReplace(sh *SectionHeader) bool {
	return sh.Name == ".interp" || sh.Type != SHT_PROGBITS
}

func (t *sectionEditTable) has(name string) bool {
	_, ok := t.pending[name]
	return ok
}

// replace returns a byte slice of exactly size bytes backing name's pending
// replacement. If name was already pending, the existing buffer is resized
// preserving its prefix; otherwise it is seeded from the section's current
// on-disk bytes (or zero-filled if the section is new or NOBITS).
func (t *sectionEditTable) replace(name string, size int) ([]byte, error) {
	if existing, ok := t.pending[name]; ok {
		if size <= len(existing) {
			t.pending[name] = existing[:size]
			return t.pending[name], nil
		}
		grown := make([]byte, size)
		copy(grown, existing)
		t.pending[name] = grown
		return grown, nil
	}

	buf := make([]byte, size)
	if sh := t.f.SectionByName(name); sh != nil && sh.Type.HasDataInFile() {
		n := int(sh.Size)
		if n > size {
			n = size
		}
		existing, err := t.f.buf.ReadBytes(int(sh.Offset), n)
		if err == nil {
			copy(buf, existing)
		}
	}
	t.pending[name] = buf
	t.order = append(t.order, name)
	return buf, nil
}

func (t *sectionEditTable) get(name string) []byte { return t.pending[name] }

// set overwrites name's pending replacement wholesale, used by the
// DT_NEEDED/vn_file rewriter to grow a string table after each append.
func (t *sectionEditTable) set(name string, data []byte) {
	if _, ok := t.pending[name]; !ok {
		t.order = append(t.order, name)
	}
	t.pending[name] = data
}

func (t *sectionEditTable) clear() {
	t.pending = make(map[string][]byte)
	t.order = nil
}

// names returns the pending section names in current SHT order, falling
// back to insertion order for names no longer present in the SHT (which
// should not occur in practice since replace only targets existing
// sections, but keeps flush total).
func (t *sectionEditTable) names(f *File) []string {
	seen := make(map[string]bool, len(t.pending))
	out := make([]string, 0, len(t.pending))
	for _, sh := range f.Sections {
		if t.has(sh.Name) && !seen[sh.Name] {
			out = append(out, sh.Name)
			seen[sh.Name] = true
		}
	}
	for _, name := range t.order {
		if !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	return out
}
