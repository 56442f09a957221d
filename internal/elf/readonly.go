// SPDX-License-Identifier: MIT

package elf

import "strings"

// NeededLibraries returns the DT_NEEDED entries in .dynamic order, without
// modifying the file. patchelf.cc has no standalone print path for this;
// the walk mirrors what rewriteNeeded does internally before deciding what
// to rename, exposed here read-only.
func (f *File) NeededLibraries() ([]string, error) {
	dyn := f.SectionByName(".dynamic")
	dynstr := f.SectionByName(".dynstr")
	if dyn == nil || dynstr == nil {
		return nil, missingSection(".dynamic")
	}

	var out []string
	n := int(dyn.Size) / f.sizeDyn()
	for i := 0; i < n; i++ {
		d, err := f.readDynAt(int(dyn.Offset) + i*f.sizeDyn())
		if err != nil {
			return nil, err
		}
		if d.Tag == DT_NULL {
			break
		}
		if d.Tag != DT_NEEDED {
			continue
		}
		name, err := f.buf.CString(int(dynstr.Offset + d.Val))
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// RPath returns the colon-delimited DT_RPATH or DT_RUNPATH search path, or
// "" if neither tag is present. patchelf.cc has no RPATH handling at all;
// grounded instead on lab47-aperture's DT_RPATH/DT_RUNPATH case arms and
// tulilirockz-legolas' DT_RUNPATH read.
func (f *File) RPath() (string, error) {
	dyn := f.SectionByName(".dynamic")
	dynstr := f.SectionByName(".dynstr")
	if dyn == nil || dynstr == nil {
		return "", missingSection(".dynamic")
	}

	n := int(dyn.Size) / f.sizeDyn()
	for i := 0; i < n; i++ {
		d, err := f.readDynAt(int(dyn.Offset) + i*f.sizeDyn())
		if err != nil {
			return "", err
		}
		if d.Tag == DT_NULL {
			break
		}
		if d.Tag != DT_RPATH && d.Tag != DT_RUNPATH {
			continue
		}
		path, err := f.buf.CString(int(dynstr.Offset + d.Val))
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return "", nil
}

// rpathEntries splits a colon-delimited search path, dropping empty
// components, for callers that want to inspect entries individually.
func rpathEntries(rpath string) []string {
	var out []string
	for _, p := range strings.Split(rpath, ":") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
