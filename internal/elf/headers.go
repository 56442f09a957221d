// SPDX-License-Identifier: MIT

package elf

import "sort"

// sortSectionsByOffset sorts f.Sections (index 0, the null section, stays
// first) by sh_offset, preserving sh_link/sh_info across the reorder by
// capturing them as section-name references before sorting and restoring
// them by name afterward — sh_link/sh_info are SHT indices, which the sort
// invalidates.
func (f *File) sortSectionsByOffset() {
	if len(f.Sections) < 2 {
		return
	}

	type linkInfo struct {
		linkName string
		infoIsSection bool
		infoName string
		info     uint32
	}
	saved := make(map[string]linkInfo, len(f.Sections))
	nameOf := func(idx uint32) string {
		if int(idx) < len(f.Sections) {
			return f.Sections[idx].Name
		}
		return ""
	}
	for _, sh := range f.Sections {
		li := linkInfo{linkName: nameOf(sh.Link)}
		if sh.Flags&SHF_INFO_LINK != 0 {
			li.infoIsSection = true
			li.infoName = nameOf(sh.Info)
		} else {
			li.info = sh.Info
		}
		saved[sh.Name] = li
	}

	head := f.Sections[0]
	rest := f.Sections[1:]
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Offset < rest[j].Offset })
	f.Sections = append([]*SectionHeader{head}, rest...)

	indexOf := make(map[string]uint32, len(f.Sections))
	for i, sh := range f.Sections {
		indexOf[sh.Name] = uint32(i)
	}
	for _, sh := range f.Sections {
		li := saved[sh.Name]
		sh.Link = indexOf[li.linkName]
		if li.infoIsSection {
			sh.Info = indexOf[li.infoName]
		} else {
			sh.Info = li.info
		}
	}
}

// rewriteHeaders is the final step of every layout path (§4.7): it fixes
// PT_PHDR, sorts the PHT, writes the PHT/SHT back to the image at their
// recorded offsets, synchronises .dynamic tag values, and retranslates
// symbol table section references.
func (f *File) rewriteHeaders(phdrAddress uint64) error {
	phdrBytes := uint64(len(f.ProgramHeaders) * f.sizePhdr())
	for _, ph := range f.ProgramHeaders {
		if ph.Type == PT_PHDR {
			ph.Offset = f.phOff
			ph.VAddr, ph.PAddr = phdrAddress, phdrAddress
			ph.FileSize, ph.MemSize = phdrBytes, phdrBytes
		}
	}

	if f.sortHeaders {
		sort.SliceStable(f.ProgramHeaders, func(i, j int) bool {
			return f.ProgramHeaders[i].Offset < f.ProgramHeaders[j].Offset
		})
	}

	f.phNum = uint16(len(f.ProgramHeaders))
	f.shNum = uint16(len(f.Sections))

	needed := int(f.phOff) + len(f.ProgramHeaders)*f.sizePhdr()
	if n := int(f.shOff) + len(f.Sections)*f.sizeShdr(); n > needed {
		needed = n
	}
	if needed > f.buf.Len() {
		f.buf.Resize(needed)
	}

	for i, ph := range f.ProgramHeaders {
		if err := f.writePhdrAt(int(f.phOff)+i*f.sizePhdr(), ph); err != nil {
			return err
		}
	}
	for i, sh := range f.Sections {
		if err := f.writeShdrAt(int(f.shOff)+i*f.sizeShdr(), sh); err != nil {
			return err
		}
	}

	if err := f.syncDynamicTags(); err != nil {
		return err
	}
	if err := f.retranslateSymbols(); err != nil {
		return err
	}

	return f.writeEhdr()
}

// syncDynamicTags implements §4.7 step 4: every .dynamic tag whose value is
// a section virtual address is updated to that section's current address.
func (f *File) syncDynamicTags() error {
	dyn := f.SectionByName(".dynamic")
	if dyn == nil {
		return nil
	}

	type tagRule struct {
		tag    DynamicTag
		names  []string
		sizeOf DynamicTag // 0 if no companion size tag
		mandatory bool
	}
	rules := []tagRule{
		{DT_STRTAB, []string{".dynstr"}, DT_STRSZ, true},
		{DT_SYMTAB, []string{".dynsym"}, 0, false},
		{DT_HASH, []string{".hash"}, 0, false},
		{DT_GNU_HASH, []string{".gnu.hash"}, 0, false},
		{DT_MIPS_XHASH, []string{".MIPS.xhash"}, 0, false},
		{DT_JMPREL, []string{".rel.plt", ".rela.plt", ".rela.IA_64.pltoff"}, 0, true},
		{DT_REL, []string{".rel.dyn", ".rel.got"}, 0, false},
		{DT_RELA, []string{".rela.dyn"}, 0, false},
		{DT_VERNEED, []string{".gnu.version_r"}, 0, false},
		{DT_VERSYM, []string{".gnu.version"}, 0, false},
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

		for _, r := range rules {
			if d.Tag != r.tag {
				continue
			}
			var target *SectionHeader
			for _, name := range r.names {
				if sh := f.SectionByName(name); sh != nil {
					target = sh
					break
				}
			}
			if target == nil {
				if r.mandatory {
					return missingSection(r.names[0])
				}
				continue
			}
			d.Val = target.Address
			if err := f.writeDynAt(off, d); err != nil {
				return err
			}
			if r.sizeOf != 0 {
				if err := f.syncDynamicSize(dyn, r.sizeOf, target.Size); err != nil {
					return err
				}
			}
		}

		if d.Tag == DT_MIPS_RLD_MAP_REL {
			rld := f.SectionByName(".rld_map")
			if rld == nil {
				f.warnf("DT_MIPS_RLD_MAP_REL has no .rld_map section, writing 0")
				d.Val = 0
			} else {
				d.Val = rld.Address - uint64(off) - dyn.Address
			}
			if err := f.writeDynAt(off, d); err != nil {
				return err
			}
		}
	}

	return nil
}

func (f *File) syncDynamicSize(dyn *SectionHeader, tag DynamicTag, val uint64) error {
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
		if d.Tag == tag {
			d.Val = val
			return f.writeDynAt(off, d)
		}
	}
	return nil
}

// retranslateSymbols implements §4.7 step 5.
func (f *File) retranslateSymbols() error {
	for _, sh := range f.Sections {
		if sh.Type != SHT_SYMTAB && sh.Type != SHT_DYNSYM {
			continue
		}
		n := int(sh.Size) / f.sizeSym()
		for i := 0; i < n; i++ {
			off := int(sh.Offset) + i*f.sizeSym()
			sym, err := f.readSymAt(off)
			if err != nil {
				return err
			}
			if sym.Shndx == SHN_UNDEF || uint32(sym.Shndx) >= SHN_LORESERVE {
				continue
			}

			oldIdx := int(sym.Shndx)
			if oldIdx >= len(f.sectionsByOldIndex) {
				f.warnf("symbol %d: st_shndx %d out of range, leaving untouched", i, sym.Shndx)
				continue
			}
			name := f.sectionsByOldIndex[oldIdx]
			target := f.SectionByName(name)
			if target == nil {
				f.warnf("symbol %d: section %q no longer present, leaving untouched", i, name)
				continue
			}
			newIdx := f.sectionIndex(target)
			if newIdx < 0 {
				continue
			}
			sym.Shndx = uint16(newIdx)
			if sym.Type() == STT_SECTION {
				sym.Value = target.Address
			}
			if err := f.writeSymAt(off, sym); err != nil {
				return err
			}
		}
	}
	return nil
}
