package memory

/*
 * Series-Q - reference byte-array memory device tests.
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
	"errors"
	"testing"

	dv "github.com/sqarch/seriesq/emu/device"
)

func TestSize(t *testing.T) {
	m := New(2048)
	if m.Size() != 2048 {
		t.Errorf("Size got: %d expected: %d", m.Size(), 2048)
	}
}

func TestByteRoundTrip(t *testing.T) {
	m := New(16)
	if err := m.WriteByte(4, 0x42); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	v, err := m.ReadByte(4)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if v != 0x42 {
		t.Errorf("ReadByte got: %#x expected: %#x", v, 0x42)
	}
}

// little-endian byte/half/word round trip law from spec §8: writing a word
// w at aligned a then reading byte a+k yields (w >> 8k) & 0xff.
func TestWordLittleEndianLaw(t *testing.T) {
	m := New(16)
	const w = uint32(0xdeadbeef)
	if err := m.WriteWord(0, w); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	for k := uint32(0); k < 4; k++ {
		b, err := m.ReadByte(k)
		if err != nil {
			t.Fatalf("ReadByte(%d): %v", k, err)
		}
		want := uint8(w >> (8 * k))
		if b != want {
			t.Errorf("byte %d got: %#x expected: %#x", k, b, want)
		}
	}
	got, err := m.ReadWord(0)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if got != w {
		t.Errorf("ReadWord got: %#x expected: %#x", got, w)
	}
}

func TestHalfLittleEndian(t *testing.T) {
	m := New(16)
	if err := m.WriteHalf(2, 0xbeef); err != nil {
		t.Fatalf("WriteHalf: %v", err)
	}
	lo, _ := m.ReadByte(2)
	hi, _ := m.ReadByte(3)
	if lo != 0xef || hi != 0xbe {
		t.Errorf("little-endian half got lo=%#x hi=%#x", lo, hi)
	}
	h, err := m.ReadHalf(2)
	if err != nil || h != 0xbeef {
		t.Errorf("ReadHalf got: %#x, err: %v", h, err)
	}
}

// Instruction fetch composition law from spec §8: writing bytes [hi, lo]
// at a, a+1 makes read_h_big(a) == (hi<<8)|lo.
func TestReadHalfBigComposition(t *testing.T) {
	m := New(16)
	_ = m.WriteByte(8, 0x12)
	_ = m.WriteByte(9, 0x34)
	got, err := m.ReadHalfBig(8)
	if err != nil {
		t.Fatalf("ReadHalfBig: %v", err)
	}
	if got != 0x1234 {
		t.Errorf("ReadHalfBig got: %#x expected: %#x", got, 0x1234)
	}
}

func TestAlignmentCheck(t *testing.T) {
	m := New(16)
	if _, err := m.ReadHalf(1); !isKind(err, dv.AlignmentCheck) {
		t.Errorf("ReadHalf(1) expected AlignmentCheck, got %v", err)
	}
	if _, err := m.ReadWord(2); !isKind(err, dv.AlignmentCheck) {
		t.Errorf("ReadWord(2) expected AlignmentCheck, got %v", err)
	}
	if err := m.WriteHalf(3, 0); !isKind(err, dv.AlignmentCheck) {
		t.Errorf("WriteHalf(3) expected AlignmentCheck, got %v", err)
	}
	if err := m.WriteWord(1, 0); !isKind(err, dv.AlignmentCheck) {
		t.Errorf("WriteWord(1) expected AlignmentCheck, got %v", err)
	}
}

func TestOutOfRange(t *testing.T) {
	m := New(16)
	if _, err := m.ReadByte(16); !isKind(err, dv.InvalidAddress) {
		t.Errorf("ReadByte(16) expected InvalidAddress, got %v", err)
	}
	if _, err := m.ReadWord(16); !isKind(err, dv.InvalidAddress) {
		t.Errorf("ReadWord(16) expected InvalidAddress, got %v", err)
	}
}

func isKind(err error, k dv.Kind) bool {
	var be *dv.BusError
	if !errors.As(err, &be) {
		return false
	}
	return be.Kind == k
}
