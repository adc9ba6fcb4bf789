package memory

/*
 * Series-Q - reference byte-array memory device.
 *
 * Copyright 2026, Series-Q contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	dv "github.com/sqarch/seriesq/emu/device"
)

// Memory is the reference device: a flat byte array. All multi-byte
// accesses are little-endian, except ReadHalfBig which composes
// big-endian for instruction fetch.
type Memory struct {
	data []byte
}

// New allocates a Memory device of the given size in bytes.
func New(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the device's byte count.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Load copies a program image into memory starting at offset.
func (m *Memory) Load(offset uint32, image []byte) {
	copy(m.data[offset:], image)
}

func inRange(data []byte, offset uint32, width uint32) bool {
	return uint64(offset)+uint64(width) <= uint64(len(data))
}

func (m *Memory) ReadByte(offset uint32) (uint8, error) {
	if !inRange(m.data, offset, 1) {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	return m.data[offset], nil
}

func (m *Memory) ReadHalf(offset uint32) (uint16, error) {
	if offset%2 != 0 {
		return 0, &dv.BusError{Kind: dv.AlignmentCheck, Addr: offset}
	}
	if !inRange(m.data, offset, 2) {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	return uint16(m.data[offset]) | uint16(m.data[offset+1])<<8, nil
}

// ReadHalfBig reads two consecutive bytes and composes them big-endian,
// for instruction fetch. (hi<<8)|lo, unlike every operand access which is
// little-endian.
func (m *Memory) ReadHalfBig(offset uint32) (uint16, error) {
	if offset%2 != 0 {
		return 0, &dv.BusError{Kind: dv.AlignmentCheck, Addr: offset}
	}
	if !inRange(m.data, offset, 2) {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	return uint16(m.data[offset])<<8 | uint16(m.data[offset+1]), nil
}

func (m *Memory) ReadWord(offset uint32) (uint32, error) {
	if offset%4 != 0 {
		return 0, &dv.BusError{Kind: dv.AlignmentCheck, Addr: offset}
	}
	if !inRange(m.data, offset, 4) {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	return uint32(m.data[offset]) |
		uint32(m.data[offset+1])<<8 |
		uint32(m.data[offset+2])<<16 |
		uint32(m.data[offset+3])<<24, nil
}

func (m *Memory) WriteByte(offset uint32, value uint8) error {
	if !inRange(m.data, offset, 1) {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	m.data[offset] = value
	return nil
}

func (m *Memory) WriteHalf(offset uint32, value uint16) error {
	if offset%2 != 0 {
		return &dv.BusError{Kind: dv.AlignmentCheck, Addr: offset}
	}
	if !inRange(m.data, offset, 2) {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	m.data[offset] = uint8(value)
	m.data[offset+1] = uint8(value >> 8)
	return nil
}

func (m *Memory) WriteWord(offset uint32, value uint32) error {
	if offset%4 != 0 {
		return &dv.BusError{Kind: dv.AlignmentCheck, Addr: offset}
	}
	if !inRange(m.data, offset, 4) {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: offset}
	}
	m.data[offset] = uint8(value)
	m.data[offset+1] = uint8(value >> 8)
	m.data[offset+2] = uint8(value >> 16)
	m.data[offset+3] = uint8(value >> 24)
	return nil
}
