// SPDX-License-Identifier: MIT

package elf

// stringTableAppend grows one string-table section's pending replacement
// incrementally, caching offsets of strings it has already appended this
// run so two rename entries sharing a replacement reuse one copy.
type stringTableAppend struct {
	f     *File
	name  string
	buf   []byte
	cache map[string]uint32
}

func (f *File) newStringTableAppend(name string) (*stringTableAppend, error) {
	sh := f.SectionByName(name)
	if sh == nil {
		return nil, missingSection(name)
	}
	var buf []byte
	if f.edits.has(name) {
		buf = append([]byte(nil), f.edits.get(name)...)
	} else {
		b, err := f.buf.ReadBytes(int(sh.Offset), int(sh.Size))
		if err != nil {
			return nil, err
		}
		buf = b
	}
	return &stringTableAppend{f: f, name: name, buf: buf, cache: make(map[string]uint32)}, nil
}

func (s *stringTableAppend) appendString(str string) uint32 {
	if off, ok := s.cache[str]; ok {
		return off
	}
	off := uint32(len(s.buf))
	s.buf = append(s.buf, []byte(str)...)
	s.buf = append(s.buf, 0)
	s.cache[str] = off
	s.f.edits.set(s.name, s.buf)
	return off
}

// RenameNeeded implements §4.9: it walks .dynamic for DT_NEEDED and, when
// present, .gnu.version_r for vn_file, renaming every entry matched by
// renameMap, then lays out and rewrites the file. renameMap keys and
// values are shared-library names, not section content.
func (f *File) RenameNeeded(renameMap map[string]string) error {
	dyn := f.SectionByName(".dynamic")
	if dyn == nil {
		return nil
	}
	dynstrName := ".dynstr"
	dynstr := f.SectionByName(dynstrName)
	if dynstr == nil {
		return missingSection(dynstrName)
	}

	var vernum uint64
	dynstrAppend, err := f.newStringTableAppend(dynstrName)
	if err != nil {
		return err
	}

	n := int(dyn.Size) / f.sizeDyn()
	for i := 0; i < n; i++ {
		off := int(dyn.Offset) + i*f.sizeDyn()
		d, err := f.readDynAt(off)
		if err != nil {
			return err
		}
		if d.Tag == DT_NULL {
			break
		}
		if d.Tag == DT_VERNEEDNUM {
			vernum = d.Val
			continue
		}
		if d.Tag != DT_NEEDED {
			continue
		}

		name, err := dynstrAppend.cstringAt(uint32(d.Val))
		if err != nil {
			return err
		}
		newName, ok := renameMap[name]
		if !ok || newName == name {
			continue
		}

		newOff := dynstrAppend.appendString(newName)
		d.Val = uint64(newOff)
		if err := f.writeDynAt(off, d); err != nil {
			return err
		}
		f.changed = true
	}

	if vernum > 0 {
		if err := f.renameVerneed(renameMap, dynstrName, dynstrAppend); err != nil {
			return err
		}
	}

	if !f.changed {
		return nil
	}

	if f.Type == ET_EXEC {
		err = f.layoutExecutable()
	} else {
		err = f.layoutLibrary()
	}
	if err != nil {
		return err
	}
	return f.verifyLoadsDisjoint()
}

// cstringAt reads a NUL-terminated string at offset off from s's current
// (possibly already-grown) content.
func (s *stringTableAppend) cstringAt(off uint32) (string, error) {
	if int(off) >= len(s.buf) {
		return "", malformed("string offset out of range")
	}
	end := int(off)
	for end < len(s.buf) && s.buf[end] != 0 {
		end++
	}
	if end >= len(s.buf) {
		return "", malformed("unterminated string")
	}
	return string(s.buf[off:end]), nil
}

// renameVerneed walks .gnu.version_r's singly-linked Verneed list, renaming
// vn_file entries in the string section named by .gnu.version_r.sh_link
// (not necessarily .dynstr).
func (f *File) renameVerneed(renameMap map[string]string, dynstrName string, dynstrAppend *stringTableAppend) error {
	verneed := f.SectionByName(".gnu.version_r")
	if verneed == nil {
		return nil
	}
	if int(verneed.Link) >= len(f.Sections) {
		return malformed(".gnu.version_r.sh_link out of range")
	}
	strSection := f.Sections[verneed.Link]

	var strAppend *stringTableAppend
	var err error
	if strSection.Name == dynstrName {
		strAppend = dynstrAppend
	} else {
		strAppend, err = f.newStringTableAppend(strSection.Name)
		if err != nil {
			return err
		}
	}

	off := verneed.Offset
	for {
		vn, err := f.readVerneedAt(int(off))
		if err != nil {
			return err
		}

		name, err := strAppend.cstringAt(vn.FileOff)
		if err == nil {
			if newName, ok := renameMap[name]; ok && newName != name {
				newOff := strAppend.appendString(newName)
				if err := f.writeVerneedFileOff(int(off), newOff); err != nil {
					return err
				}
				f.changed = true
			}
		}

		if vn.Next == 0 {
			break
		}
		off += uint64(vn.Next)
	}
	return nil
}
