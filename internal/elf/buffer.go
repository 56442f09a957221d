// SPDX-License-Identifier: MIT

package elf

import (
	"encoding/binary"
	"fmt"
)

// ByteBuffer owns the mutable file image and exposes length-checked,
// endian-aware fixed-width reads and writes. Every access is bounds-checked
// against the current length; Resize preserves existing bytes and
// zero-fills new ones.
type ByteBuffer struct {
	data  []byte
	order binary.ByteOrder
}

func newByteBuffer(data []byte, endian FileEndian) *ByteBuffer {
	b := &ByteBuffer{data: data}
	if endian == ELFDATA2MSB {
		b.order = binary.BigEndian
	} else {
		b.order = binary.LittleEndian
	}
	return b
}

func (b *ByteBuffer) Len() int { return len(b.data) }

func (b *ByteBuffer) Bytes() []byte { return b.data }

func (b *ByteBuffer) checkBounds(offset, size int) error {
	if offset < 0 || size < 0 || offset+size > len(b.data) {
		return fmt.Errorf("%w: offset %d size %d buffer length %d", ErrOutOfBounds, offset, size, len(b.data))
	}
	return nil
}

// Resize grows or shrinks the buffer, preserving existing bytes and
// zero-filling any newly added bytes.
func (b *ByteBuffer) Resize(newLen int) {
	if newLen <= len(b.data) {
		b.data = b.data[:newLen]
		return
	}
	grown := make([]byte, newLen)
	copy(grown, b.data)
	b.data = grown
}

func (b *ByteBuffer) ReadU8(offset int) (uint8, error) {
	if err := b.checkBounds(offset, 1); err != nil {
		return 0, err
	}
	return b.data[offset], nil
}

func (b *ByteBuffer) WriteU8(offset int, v uint8) error {
	if err := b.checkBounds(offset, 1); err != nil {
		return err
	}
	b.data[offset] = v
	return nil
}

func (b *ByteBuffer) ReadU16(offset int) (uint16, error) {
	if err := b.checkBounds(offset, 2); err != nil {
		return 0, err
	}
	return b.order.Uint16(b.data[offset:]), nil
}

func (b *ByteBuffer) WriteU16(offset int, v uint16) error {
	if err := b.checkBounds(offset, 2); err != nil {
		return err
	}
	b.order.PutUint16(b.data[offset:], v)
	return nil
}

func (b *ByteBuffer) ReadU32(offset int) (uint32, error) {
	if err := b.checkBounds(offset, 4); err != nil {
		return 0, err
	}
	return b.order.Uint32(b.data[offset:]), nil
}

func (b *ByteBuffer) WriteU32(offset int, v uint32) error {
	if err := b.checkBounds(offset, 4); err != nil {
		return err
	}
	b.order.PutUint32(b.data[offset:], v)
	return nil
}

func (b *ByteBuffer) ReadU64(offset int) (uint64, error) {
	if err := b.checkBounds(offset, 8); err != nil {
		return 0, err
	}
	return b.order.Uint64(b.data[offset:]), nil
}

func (b *ByteBuffer) WriteU64(offset int, v uint64) error {
	if err := b.checkBounds(offset, 8); err != nil {
		return err
	}
	b.order.PutUint64(b.data[offset:], v)
	return nil
}

// ReadBytes returns a copy of size bytes starting at offset.
func (b *ByteBuffer) ReadBytes(offset, size int) ([]byte, error) {
	if err := b.checkBounds(offset, size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, b.data[offset:offset+size])
	return out, nil
}

// WriteBytes copies src into the buffer starting at offset.
func (b *ByteBuffer) WriteBytes(offset int, src []byte) error {
	if err := b.checkBounds(offset, len(src)); err != nil {
		return err
	}
	copy(b.data[offset:], src)
	return nil
}

// Fill sets size bytes starting at offset to v.
func (b *ByteBuffer) Fill(offset, size int, v byte) error {
	if err := b.checkBounds(offset, size); err != nil {
		return err
	}
	region := b.data[offset : offset+size]
	for i := range region {
		region[i] = v
	}
	return nil
}

// CString reads a NUL-terminated string starting at offset.
func (b *ByteBuffer) CString(offset int) (string, error) {
	end := offset
	for {
		c, err := b.ReadU8(end)
		if err != nil {
			return "", fmt.Errorf("%w: unterminated string at offset %d", ErrMalformed, offset)
		}
		if c == 0 {
			break
		}
		end++
	}
	return string(b.data[offset:end]), nil
}
