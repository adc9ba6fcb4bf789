/*
   Series-Q - Register-Memory and Register-Memory-Indexed family execution.

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

// memEA computes the effective address for a decoded RM or RMX instruction.
// LA and BAL address themselves (memLA, memBAL) omit the segment base, per
// §4.4's offset-only addressing variant.
func (c *CPU) memEA(d *decoded) uint32 {
	op := d.memOp()
	offsetOnly := op == memLA || op == memBAL

	var base uint32
	if !offsetOnly {
		base = c.SBase[d.segS]
	}

	switch d.fam {
	case famRM:
		uFlag := c.SFlags[d.segS]&segU != 0
		return base + c.R[d.regR] + ext12(d.idx, uFlag)
	case famRMX:
		return base + c.R[d.regR] + c.R[d.regX] + d.idx
	default:
		return 0
	}
}

func newMemTable() [16]func(*CPU, *decoded) *Fault {
	var t [16]func(*CPU, *decoded) *Fault

	t[memLW] = memLW_
	t[memLB] = memLB_
	t[memLBU] = memLBU_
	t[memLH] = memLH_
	t[memLHU] = memLHU_
	t[memSW] = memSW_
	t[memSB] = memSB_
	t[memSH] = memSH_
	t[memLA] = memLA_
	t[memBAL] = memBAL_

	return t
}

// checkedRead/checkedWrite apply §4.5's access check before touching the
// bus: unmapped or under-permissioned access becomes a SegmentationFault
// without ever reaching bus.Read*/Write*.

func (c *CPU) checkedReadWord(seg uint8, addr uint32) (uint32, *Fault) {
	if !c.accessCheck(seg, addr, segR) {
		return 0, segFault(SegmentationFault)
	}
	v, err := c.bus.ReadWord(addr)
	if err != nil {
		return 0, addrFault(ReadFault, addr)
	}
	return v, nil
}

func (c *CPU) checkedReadHalf(seg uint8, addr uint32) (uint16, *Fault) {
	if !c.accessCheck(seg, addr, segR) {
		return 0, segFault(SegmentationFault)
	}
	v, err := c.bus.ReadHalf(addr)
	if err != nil {
		return 0, addrFault(ReadFault, addr)
	}
	return v, nil
}

func (c *CPU) checkedReadByte(seg uint8, addr uint32) (uint8, *Fault) {
	if !c.accessCheck(seg, addr, segR) {
		return 0, segFault(SegmentationFault)
	}
	v, err := c.bus.ReadByte(addr)
	if err != nil {
		return 0, addrFault(ReadFault, addr)
	}
	return v, nil
}

func (c *CPU) checkedWriteWord(seg uint8, addr uint32, v uint32) *Fault {
	if !c.accessCheck(seg, addr, segW) {
		return segFault(SegmentationFault)
	}
	if err := c.bus.WriteWord(addr, v); err != nil {
		return addrFault(WriteFault, addr)
	}
	return nil
}

func (c *CPU) checkedWriteHalf(seg uint8, addr uint32, v uint16) *Fault {
	if !c.accessCheck(seg, addr, segW) {
		return segFault(SegmentationFault)
	}
	if err := c.bus.WriteHalf(addr, v); err != nil {
		return addrFault(WriteFault, addr)
	}
	return nil
}

func (c *CPU) checkedWriteByte(seg uint8, addr uint32, v uint8) *Fault {
	if !c.accessCheck(seg, addr, segW) {
		return segFault(SegmentationFault)
	}
	if err := c.bus.WriteByte(addr, v); err != nil {
		return addrFault(WriteFault, addr)
	}
	return nil
}

func memLW_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	v, f := c.checkedReadWord(d.segS, addr)
	if f != nil {
		return f
	}
	c.R[d.regD] = v
	return nil
}

func memLB_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	v, f := c.checkedReadByte(d.segS, addr)
	if f != nil {
		return f
	}
	c.R[d.regD] = uint32(int32(int8(v)))
	return nil
}

func memLBU_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	v, f := c.checkedReadByte(d.segS, addr)
	if f != nil {
		return f
	}
	c.R[d.regD] = uint32(v)
	return nil
}

func memLH_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	v, f := c.checkedReadHalf(d.segS, addr)
	if f != nil {
		return f
	}
	c.R[d.regD] = uint32(int32(int16(v)))
	return nil
}

func memLHU_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	v, f := c.checkedReadHalf(d.segS, addr)
	if f != nil {
		return f
	}
	c.R[d.regD] = uint32(v)
	return nil
}

func memSW_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	return c.checkedWriteWord(d.segS, addr, c.R[d.regD])
}

func memSB_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	return c.checkedWriteByte(d.segS, addr, uint8(c.R[d.regD]))
}

func memSH_(c *CPU, d *decoded) *Fault {
	addr := c.memEA(d)
	return c.checkedWriteHalf(d.segS, addr, uint16(c.R[d.regD]))
}

// memLA_ ("load address") computes the effective address without
// touching the bus or running an access check, and without the segment
// base term — it exists to let software build pointers rather than
// dereference them.
func memLA_(c *CPU, d *decoded) *Fault {
	c.R[d.regD] = c.memEA(d)
	return nil
}

// memBAL_ ("branch and link") is unconditional when regD is zero; otherwise
// it first saves the current segment PS to LS and the return PC to
// R[regD], then switches PS to seg_s and branches to the computed
// offset-only address.
func memBAL_(c *CPU, d *decoded) *Fault {
	target := c.memEA(d)
	if d.regD != 0 {
		c.copySegment(segLS, segPS)
		c.R[d.regD] = c.R[15]
	}
	c.copySegment(segPS, d.segS)
	c.R[15] = target
	return nil
}
