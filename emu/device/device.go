/*
 * Series-Q - Addressable device contract.
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

// Package device defines the contract every bus-attached entity implements:
// byte/half/word read and write against a device-relative offset.
package device

import "fmt"

// Kind of bus error a device access can report.
type Kind int

const (
	// InvalidAddress means the offset is outside the device's region.
	InvalidAddress Kind = iota + 1
	// AlignmentCheck means a half/word access was not naturally aligned.
	AlignmentCheck
	// AccessViolation means the device refused the access for a reason
	// of its own (e.g. a write to a read-only register).
	AccessViolation
)

func (k Kind) String() string {
	switch k {
	case InvalidAddress:
		return "invalid address"
	case AlignmentCheck:
		return "alignment check"
	case AccessViolation:
		return "access violation"
	default:
		return "unknown bus error"
	}
}

// BusError is the single tagged-variant error every device/bus operation
// reports on failure.
type BusError struct {
	Kind Kind
	Addr uint32
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s at %#08x", e.Kind, e.Addr)
}

// Device is the six-operation contract an addressable entity implements.
// Offsets are device-relative; the Bus performs base translation.
type Device interface {
	ReadByte(offset uint32) (uint8, error)
	ReadHalf(offset uint32) (uint16, error)
	ReadWord(offset uint32) (uint32, error)
	WriteByte(offset uint32, value uint8) error
	WriteHalf(offset uint32, value uint16) error
	WriteWord(offset uint32, value uint32) error
}

// HalfBigReader is an optional capability for instruction-fetch style
// reads: two consecutive bytes composed big-endian. Memory implements it;
// peripherals may refuse it by not implementing the interface.
type HalfBigReader interface {
	ReadHalfBig(offset uint32) (uint16, error)
}
