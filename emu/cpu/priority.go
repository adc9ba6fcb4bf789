/*
   Series-Q - priority-level engine and fault dispatch.

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

import "fmt"

// Fault is the CPU's own fault representation: a signed, sign-extended
// code plus an optional faulting address.
type Fault struct {
	Code    int8
	Addr    uint32
	HasAddr bool
}

func (f *Fault) Error() string {
	if f.HasAddr {
		return fmt.Sprintf("fault %d at %#x", f.Code, f.Addr)
	}
	return fmt.Sprintf("fault %d", f.Code)
}

func segFault(kind int8) *Fault       { return &Fault{Code: kind} }
func addrFault(kind int8, a uint32) *Fault { return &Fault{Code: kind, Addr: a, HasAddr: true} }

func (c *CPU) currentLevel() int {
	return int((c.F[8] & f8LevelMask) >> f8LevelShift)
}

func (c *CPU) inSupervisor() bool {
	return c.F[8]&f8AppState == 0
}

// plSet is pl_set(level, selector_for_PS) from the priority-level engine:
// it saves the current PS context to the link block at level, then loads
// PS and PC from the entry block at level. The caller must already hold
// the bus lock.
func (c *CPU) plSet(level uint8, selectorForPS uint8) *Fault {
	linkAddr := c.PLBABase + 16*uint32(level)
	packedCur := uint32(c.SKey[segPS]) | uint32(c.SFlags[segPS])<<8 | uint32(c.F[8])<<16 | uint32(c.SSel[segPS])<<24

	if err := c.bus.WriteWord(linkAddr, c.SBase[segPS]); err != nil {
		return addrFault(WriteFault, linkAddr)
	}
	if err := c.bus.WriteWord(linkAddr+4, c.SLimit[segPS]); err != nil {
		return addrFault(WriteFault, linkAddr+4)
	}
	if err := c.bus.WriteWord(linkAddr+8, packedCur); err != nil {
		return addrFault(WriteFault, linkAddr+8)
	}
	if err := c.bus.WriteWord(linkAddr+12, c.R[15]); err != nil {
		return addrFault(WriteFault, linkAddr+12)
	}

	entryAddr := c.PEBABase + 16*uint32(level)
	psBase, err := c.bus.ReadWord(entryAddr)
	if err != nil {
		return addrFault(ReadFault, entryAddr)
	}
	psLimit, err := c.bus.ReadWord(entryAddr + 4)
	if err != nil {
		return addrFault(ReadFault, entryAddr+4)
	}
	packedTarget, err := c.bus.ReadWord(entryAddr + 8)
	if err != nil {
		return addrFault(ReadFault, entryAddr+8)
	}
	pc, err := c.bus.ReadWord(entryAddr + 12)
	if err != nil {
		return addrFault(ReadFault, entryAddr+12)
	}

	c.F[8] = (c.F[8] &^ f8LevelMask) | ((level << f8LevelShift) & f8LevelMask)
	c.SBase[segPS] = psBase
	c.SLimit[segPS] = psLimit
	c.SKey[segPS] = uint8(packedTarget)
	c.SFlags[segPS] = uint8(packedTarget >> 8)
	c.SSel[segPS] = selectorForPS
	c.R[15] = pc
	c.log.Debug("priority level entered", "plevel", level, "pc", pc)
	return nil
}

// plEsc is pl_esc(level, selector): escalates only if level is strictly
// above the current priority level, reporting whether it did.
func (c *CPU) plEsc(level int, selector uint8) bool {
	if level <= c.currentLevel() {
		return false
	}
	if ferr := c.plSet(uint8(level), selector); ferr != nil {
		c.raiseFaultDepth(ferr.Code, ferr.Addr, ferr.HasAddr, 0)
	}
	return true
}

// plRetn is pl_retn(): restores PS and PC from the link block at the
// current level, including F[8] in full (the prior level bits too). The
// caller must already hold the bus lock.
func (c *CPU) plRetn() *Fault {
	level := c.currentLevel()
	linkAddr := c.PLBABase + 16*uint32(level)

	psBase, err := c.bus.ReadWord(linkAddr)
	if err != nil {
		return addrFault(ReadFault, linkAddr)
	}
	psLimit, err := c.bus.ReadWord(linkAddr + 4)
	if err != nil {
		return addrFault(ReadFault, linkAddr+4)
	}
	packed, err := c.bus.ReadWord(linkAddr + 8)
	if err != nil {
		return addrFault(ReadFault, linkAddr+8)
	}
	pc, err := c.bus.ReadWord(linkAddr + 12)
	if err != nil {
		return addrFault(ReadFault, linkAddr+12)
	}

	c.SBase[segPS] = psBase
	c.SLimit[segPS] = psLimit
	c.SKey[segPS] = uint8(packed)
	c.SFlags[segPS] = uint8(packed >> 8)
	c.F[8] = uint8(packed >> 16)
	c.SSel[segPS] = uint8(packed >> 24)
	c.R[15] = pc
	c.log.Debug("priority level returned", "plevel", level, "pc", pc)
	return nil
}

// raiseFault records the faulting instruction word and address, then
// dispatches as either a system fault (already supervisor) or an
// application fault (select the level named by F[8] bits 1..3 and enter
// it directly — this is the level a fault in THIS context escalates to,
// independent of whether it equals the level already running).
func (c *CPU) raiseFault(code int8, addr uint32, hasAddr bool) {
	c.raiseFaultDepth(code, addr, hasAddr, 0)
}

func (c *CPU) raiseFaultDepth(code int8, addr uint32, hasAddr bool, depth int) {
	c.F[10] = byte(c.curIW0 >> 8)
	c.F[11] = byte(c.curIW0)
	if hasAddr {
		c.F[12] = byte(addr >> 24)
		c.F[13] = byte(addr >> 16)
		c.F[14] = byte(addr >> 8)
		c.F[15] = byte(addr)
	}
	c.log.Debug("fault raised", "plevel", c.currentLevel(), "code", code, "depth", depth)

	if depth >= maxFaultDepth {
		c.running.Store(false)
		c.log.Error("fault depth exceeded, halting", "plevel", c.currentLevel(), "code", code)
		return
	}

	if c.inSupervisor() {
		if c.currentLevel() == 7 {
			c.running.Store(false)
			return
		}
		if ferr := c.plSet(7, uint8(code)); ferr != nil {
			c.raiseFaultDepth(ferr.Code, ferr.Addr, ferr.HasAddr, depth+1)
		}
		return
	}

	level := c.currentLevel()
	if level == 7 {
		c.running.Store(false)
		return
	}
	if ferr := c.plSet(uint8(level), uint8(code)); ferr != nil {
		c.raiseFaultDepth(ferr.Code, ferr.Addr, ferr.HasAddr, depth+1)
	}
}
