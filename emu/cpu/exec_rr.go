/*
   Series-Q - Register-Register family execution.

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

type rrOp func(*CPU, *decoded) *Fault

// newRRTable builds the 0x00-0x3F Register-Register dispatch table once,
// mirroring the teacher's createTable()/op<NAME> convention.
func newRRTable() [64]rrOp {
	var t [64]rrOp

	t[opNop] = opNop_
	t[opMov] = opMov_
	t[opAdd] = opAdd_
	t[opAddC] = opAddC_
	t[opSub] = opSub_
	t[opSubC] = opSubC_
	t[opAnd] = opAnd_
	t[opOr] = opOr_
	t[opXor] = opXor_
	t[opXnor] = opXnor_
	t[opShl] = opShl_
	t[opShr] = opShr_
	t[opSal] = opSal_
	t[opSar] = opSar_
	t[opCmp] = opCmp_

	t[opAddQ] = opAddQ_
	t[opSubQ] = opSubQ_
	t[opAndQ] = opAndQ_
	t[opOrQ] = opOrQ_
	t[opXorQ] = opXorQ_
	t[opXnorQ] = opXnorQ_
	t[opShlQ] = opShlQ_
	t[opShrQ] = opShrQ_
	t[opSalQ] = opSalQ_
	t[opSarQ] = opSarQ_
	t[opShlLQ] = opShlLQ_
	t[opShrLQ] = opShrLQ_
	t[opSalLQ] = opSalLQ_
	t[opSarLQ] = opSarLQ_

	t[opTruncB] = opTruncB_
	t[opTruncH] = opTruncH_
	t[opSextB] = opSextB_
	t[opSextH] = opSextH_
	t[opZextB] = opZextB_
	t[opZextH] = opZextH_
	t[opInsB] = opInsB_
	t[opInsH] = opInsH_

	t[opIf] = opIf_
	t[opIfN] = opIfN_

	t[opLF] = opLF_
	t[opSF] = opSF_
	t[opLSel] = opLSel_
	t[opSSel] = opSSel_
	t[opLMPK] = opLMPK_
	t[opSMPK] = opSMPK_
	t[opCSel] = opCSel_
	t[opLSDTR] = opLSDTR_
	t[opSSDTR] = opSSDTR_
	t[opSSelHC] = opSSelHC_

	return t
}

func opNop_(c *CPU, d *decoded) *Fault { return nil }

func opMov_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.R[d.regR]
	return nil
}

func opAdd_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluAdd(c.R[d.regD], c.R[d.regR], false)
	return nil
}

func opAddC_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluAdd(c.R[d.regD], c.R[d.regR], true)
	return nil
}

func opSub_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluSub(c.R[d.regD], c.R[d.regR], false)
	return nil
}

func opSubC_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluSub(c.R[d.regD], c.R[d.regR], true)
	return nil
}

func opAnd_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] &= c.R[d.regR]
	return nil
}

func opOr_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] |= c.R[d.regR]
	return nil
}

func opXor_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] ^= c.R[d.regR]
	return nil
}

func opXnor_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = ^(c.R[d.regD] ^ c.R[d.regR])
	return nil
}

func opShl_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], c.R[d.regR], opShl)
	return nil
}

func opShr_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], c.R[d.regR], opShr)
	return nil
}

func opSal_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], c.R[d.regR], opSal)
	return nil
}

func opSar_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], c.R[d.regR], opSar)
	return nil
}

func opCmp_(c *CPU, d *decoded) *Fault {
	c.aluSub(c.R[d.regD], c.R[d.regR], false)
	return nil
}

func opAddQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluAdd(c.R[d.regD], uint32(d.regR), false)
	return nil
}

func opSubQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluSub(c.R[d.regD], uint32(d.regR), false)
	return nil
}

func opAndQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] &= uint32(d.regR)
	return nil
}

func opOrQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] |= uint32(d.regR)
	return nil
}

func opXorQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] ^= uint32(d.regR)
	return nil
}

func opXnorQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = ^(c.R[d.regD] ^ uint32(d.regR))
	return nil
}

func opShlQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, false), opShlQ)
	return nil
}

func opShrQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, false), opShrQ)
	return nil
}

func opSalQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, false), opSalQ)
	return nil
}

func opSarQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, false), opSarQ)
	return nil
}

func opShlLQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, true), opShlLQ)
	return nil
}

func opShrLQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, true), opShrLQ)
	return nil
}

func opSalLQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, true), opSalLQ)
	return nil
}

func opSarLQ_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.aluShift(c.R[d.regD], quickBias(d.regR, true), opSarLQ)
	return nil
}

func opTruncB_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] &= 0xFF
	return nil
}

func opTruncH_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] &= 0xFFFF
	return nil
}

func opSextB_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = uint32(int32(int8(uint8(c.R[d.regR]))))
	return nil
}

func opSextH_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = uint32(int32(int16(uint16(c.R[d.regR]))))
	return nil
}

func opZextB_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = uint32(uint8(c.R[d.regR]))
	return nil
}

func opZextH_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = uint32(uint16(c.R[d.regR]))
	return nil
}

func opInsB_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = (c.R[d.regD] &^ 0xFF) | (c.R[d.regR] & 0xFF)
	return nil
}

func opInsH_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = (c.R[d.regD] &^ 0xFFFF) | (c.R[d.regR] & 0xFFFF)
	return nil
}

func opIf_(c *CPU, d *decoded) *Fault {
	if c.conditionHolds(d.regD & 0x7) {
		c.skip = true
	}
	return nil
}

func opIfN_(c *CPU, d *decoded) *Fault {
	if !c.conditionHolds(d.regD & 0x7) {
		c.skip = true
	}
	return nil
}

// supervisorGate returns a fault for any of the supervisor register-move
// opcodes executed in application state. Per §4.4 these are grouped as
// "supervisor register moves" as a whole, gated regardless of which
// register index they target.
func (c *CPU) supervisorGate() *Fault {
	if !c.inSupervisor() {
		return segFault(SupervisorAccess)
	}
	return nil
}

func opLF_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.R[d.regD] = uint32(c.F[d.regR])
	return nil
}

func opSF_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.F[d.regD] = uint8(c.R[d.regR])
	return nil
}

func opLSel_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.SSel[d.regD] = uint8(c.R[d.regR])
	return nil
}

func opSSel_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.R[d.regD] = uint32(c.SSel[d.regR])
	return nil
}

func opLMPK_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.MPK[d.regD] = uint8(c.R[d.regR])
	return nil
}

func opSMPK_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.R[d.regD] = uint32(c.MPK[d.regR])
	return nil
}

func opCSel_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.copySegment(d.regD, d.regR)
	return nil
}

func opLSDTR_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	c.R[d.regD] = c.SDTRBase
	c.R[d.regR] = uint32(c.SDTRLen)
	return nil
}

func opSSDTR_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	return c.setSDTR(c.R[d.regD], uint8(c.R[d.regR]))
}

func opSSelHC_(c *CPU, d *decoded) *Fault {
	if f := c.supervisorGate(); f != nil {
		return f
	}
	selector := uint8(c.R[d.regR])
	base, limit, key, flags, ferr := c.loadDescriptor(selector)
	if ferr != nil {
		return ferr
	}
	c.SBase[d.regD] = base
	c.SLimit[d.regD] = limit
	c.SKey[d.regD] = key
	c.SFlags[d.regD] = flags
	c.SSel[d.regD] = selector
	return nil
}
