/*
   Series-Q - instruction decode.

   Copyright 2026, Series-Q contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

// family distinguishes the three instruction shapes that fall out of an
// opcode's high byte.
type family int

const (
	famRR family = iota
	famRMX
	famRM
	famIllegal
)

// decoded is the tagged-variant form produced by decode: one struct with
// the union of fields any family needs, dispatched on fam.
type decoded struct {
	fam    family
	length int
	opcode uint8
	regD   uint8
	regR   uint8
	segS   uint8
	regX   uint8
	idx    uint32
}

// instrLength inspects iw0's top two bits: 01 or 11 select a four-byte
// instruction, anything else two bytes.
func instrLength(iw0 uint16) int {
	top2 := (iw0 >> 14) & 0x3
	if top2 == 1 || top2 == 3 {
		return 4
	}
	return 2
}

// decode splits iw0 (and iw1, for four-byte forms) into a decoded value.
// It never fails: an opcode outside the three defined ranges decodes to
// famIllegal and is rejected at execute time.
func decode(iw0, iw1 uint16, length int) decoded {
	opcode := uint8((iw0 >> 8) & 0xFF)
	d := decoded{
		length: length,
		opcode: opcode,
		regD:   uint8((iw0 >> 4) & 0xF),
		regR:   uint8(iw0 & 0xF),
	}
	switch {
	case length == 2 && opcode <= 0x3F:
		d.fam = famRR
	case length == 4 && opcode >= 0x40 && opcode <= 0x5F:
		d.fam = famRMX
		d.segS = uint8((iw1 >> 12) & 0xF)
		d.regX = uint8((iw1 >> 8) & 0xF)
		d.idx = uint32(iw1 & 0xFF)
	case length == 4 && opcode >= 0x60 && opcode <= 0x7F:
		d.fam = famRM
		d.segS = uint8((iw1 >> 12) & 0xF)
		d.idx = uint32(iw1 & 0xFFF)
	default:
		d.fam = famIllegal
	}
	return d
}

// memOp is the opcode's low five bits within its RM/RMX family, selecting
// the operation regardless of which family it arrived in.
func (d *decoded) memOp() uint8 {
	if d.opcode >= rmBase {
		return d.opcode - rmBase
	}
	return d.opcode - rmxBase
}

// ext12 sign- or zero-extends a 12-bit RM displacement per the segment's U
// flag: clear sign-extends, set zero-extends.
func ext12(idx uint32, uFlag bool) uint32 {
	if uFlag {
		return idx
	}
	if idx&0x800 != 0 {
		return idx | 0xFFFFF000
	}
	return idx
}
