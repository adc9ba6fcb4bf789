/*
   Series-Q - ALU operations and PLGEVCSB condition flags.

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

// setParity sets or clears F[0].P from the low bit of the result.
func (c *CPU) setParity(result uint32) {
	if result&1 != 0 {
		c.F[0] |= flagP
	} else {
		c.F[0] &^= flagP
	}
}

// aluAdd performs a 32-bit add, with carry-in when useCarry is true and
// F[0].C was set, and sets PLGEVCSB.
func (c *CPU) aluAdd(a, b uint32, useCarry bool) uint32 {
	var carryIn uint64
	if useCarry && c.F[0]&flagC != 0 {
		carryIn = 1
	}
	wide := uint64(a) + uint64(b) + carryIn
	result := uint32(wide)

	c.F[0] &^= (flagL | flagG | flagE | flagV | flagC | flagS | flagB)
	if wide > 0xFFFFFFFF {
		c.F[0] |= flagC
	}
	if (a>>31 == b>>31) && (result>>31 != a>>31) {
		c.F[0] |= flagV
	}
	c.setCompareFlags(a, b)
	c.setParity(result)
	return result
}

// aluSub performs a 32-bit subtract, with borrow-in when useCarry is true
// and F[0].C was set, and sets PLGEVCSB symmetrically with aluAdd.
func (c *CPU) aluSub(a, b uint32, useCarry bool) uint32 {
	var borrowIn uint64
	if useCarry && c.F[0]&flagC != 0 {
		borrowIn = 1
	}
	wide := uint64(a) - uint64(b) - borrowIn
	result := uint32(wide)

	c.F[0] &^= (flagL | flagG | flagE | flagV | flagC | flagS | flagB)
	if uint64(a) < uint64(b)+borrowIn {
		c.F[0] |= flagC
	}
	if (a>>31 != b>>31) && (result>>31 != a>>31) {
		c.F[0] |= flagV
	}
	c.setCompareFlags(a, b)
	c.setParity(result)
	return result
}

// setCompareFlags sets the L/G/E (unsigned) and S/B (signed) ordering bits
// for dest (a) vs src (b), used by ADD/SUB/CMP alike. L means dest > src,
// G means dest < src — the source operand is the left-hand side of the
// comparison, not the destination.
func (c *CPU) setCompareFlags(a, b uint32) {
	c.F[0] &^= (flagL | flagG | flagE | flagS | flagB)
	switch {
	case a == b:
		c.F[0] |= flagE
	case b < a:
		c.F[0] |= flagL
	default:
		c.F[0] |= flagG
	}
	sa, sb := int32(a), int32(b)
	switch {
	case sa == sb:
		// shares E with the unsigned path
	case sb < sa:
		c.F[0] |= flagS
	default:
		c.F[0] |= flagB
	}
}

// aluShift implements SHL/SHR (logical) and SAL/SAR (arithmetic), all mod
// 32 shift counts, C = bit shifted out, P updated, other flags unchanged.
func (c *CPU) aluShift(v uint32, count uint32, op uint8) uint32 {
	count &= 0x1F
	var result uint32
	var carryOut bool
	switch op {
	case opShl, opShlQ, opShlLQ, opSal, opSalQ, opSalLQ:
		if count > 0 {
			carryOut = (v>>(32-count))&1 != 0
		}
		result = v << count
	case opShr, opShrQ, opShrLQ:
		if count > 0 {
			carryOut = (v>>(count-1))&1 != 0
		}
		result = v >> count
	case opSar, opSarQ, opSarLQ:
		if count > 0 {
			carryOut = (v>>(count-1))&1 != 0
		}
		result = uint32(int32(v) >> count)
	}
	if carryOut {
		c.F[0] |= flagC
	} else {
		c.F[0] &^= flagC
	}
	c.setParity(result)
	return result
}

// quickBias returns the effective shift count for a Q/LQ immediate: plain
// quick ops bias by +1, "long quick" by +16.
func quickBias(imm uint8, long bool) uint32 {
	if long {
		return uint32(imm) + 16
	}
	return uint32(imm) + 1
}

// conditionHolds evaluates one of the eight IF/IFN condition codes against
// the current F[0].
func (c *CPU) conditionHolds(cond uint8) bool {
	f := c.F[0]
	switch cond {
	case condEQ:
		return f&flagE != 0
	case condNE:
		return f&flagE == 0
	case condLTU:
		return f&flagL != 0
	case condGEU:
		return f&flagL == 0
	case condLTS:
		return f&flagS != 0
	case condGES:
		return f&flagS == 0
	case condCY:
		return f&flagC != 0
	case condOV:
		return f&flagV != 0
	default:
		return false
	}
}
