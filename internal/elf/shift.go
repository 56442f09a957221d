// SPDX-License-Identifier: MIT

package elf

// shiftFile implements §4.5.3: grows the file by extraPages whole pages and
// moves everything at or after file offset s forward by that amount,
// carving out room at the front for the enlarged header/section block that
// executable-mode layout is about to write.
func (f *File) shiftFile(extraPages uint64, s uint64) error {
	shift := extraPages * f.pageSize
	if shift == 0 {
		return nil
	}

	oldSize := uint64(f.buf.Len())
	f.buf.Resize(int(oldSize + shift))
	copy(f.buf.Bytes()[s+shift:], f.buf.Bytes()[s:oldSize])
	if err := f.buf.Fill(int(s), int(shift), 0); err != nil {
		return err
	}

	f.phOff = uint64(f.sizeEhdr())
	if f.shOff >= s {
		f.shOff += shift
	}
	for _, sh := range f.Sections {
		if sh.Offset >= s {
			sh.Offset += shift
		}
	}

	var splitOriginal *ProgramHeader
	var splitNew *ProgramHeader
	for _, ph := range f.ProgramHeaders {
		if ph.Type == PT_LOAD && ph.Offset < s && ph.Offset+ph.FileSize > s {
			delta := s - ph.Offset
			splitNew = &ProgramHeader{
				Type:     PT_LOAD,
				Flags:    PF_R | PF_W,
				Offset:   ph.Offset,
				VAddr:    ph.VAddr - shift,
				PAddr:    ph.PAddr - shift,
				FileSize: delta + shift,
				MemSize:  delta + shift,
				Align:    f.pageSize,
			}
			ph.Offset = s + shift
			ph.VAddr += delta
			ph.PAddr += delta
			ph.FileSize -= delta
			ph.MemSize -= delta
			splitOriginal = ph
			break
		}
	}

	for _, ph := range f.ProgramHeaders {
		if ph == splitOriginal {
			continue
		}
		if ph.Offset >= s {
			ph.Offset += shift
			if ph.Align != 0 && (ph.VAddr-ph.Offset)%ph.Align != 0 {
				ph.Align = f.pageSize
			}
		} else if ph.VAddr >= shift && ph.PAddr >= shift {
			ph.VAddr -= shift
			ph.PAddr -= shift
		}
	}

	if splitNew != nil {
		f.ProgramHeaders = append(f.ProgramHeaders, splitNew)
	}

	return nil
}
