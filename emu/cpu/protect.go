/*
   Series-Q - segmentation and protection unit.

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

// accessCheck implements §4.5's access check for (segment s, address a,
// permission bit). The caller holds the bus lock; this touches only CPU
// state, no bus accesses.
func (c *CPU) accessCheck(seg uint8, addr uint32, perm uint8) bool {
	if addr < c.SBase[seg] || addr >= c.SLimit[seg] {
		return false
	}
	if c.inSupervisor() {
		return true
	}
	if !c.mpkContains(c.SKey[seg]) {
		return false
	}
	return c.SFlags[seg]&perm != 0
}

// copySegment copies segment src's base/limit/key/flags/selector onto dst,
// used by CSEL and by BAL's implicit PS->LS save.
func (c *CPU) copySegment(dst, src uint8) {
	c.SBase[dst] = c.SBase[src]
	c.SLimit[dst] = c.SLimit[src]
	c.SKey[dst] = c.SKey[src]
	c.SFlags[dst] = c.SFlags[src]
	c.SSel[dst] = c.SSel[src]
}

func (c *CPU) mpkContains(key uint8) bool {
	for _, k := range c.MPK {
		if k == key {
			return true
		}
	}
	return false
}

// loadDescriptor reads descriptor selector from the segment descriptor
// table (caller holds the bus lock). A selector beyond SDTR_len is
// OutOfBounds; a bus error while reading is ReadFault.
func (c *CPU) loadDescriptor(selector uint8) (base, limit uint32, key, flags uint8, ferr *Fault) {
	if uint16(selector) >= uint16(c.SDTRLen) {
		return 0, 0, 0, 0, segFault(OutOfBounds)
	}
	addr := c.SDTRBase + 12*uint32(selector)
	base, err := c.bus.ReadWord(addr)
	if err != nil {
		return 0, 0, 0, 0, addrFault(ReadFault, addr)
	}
	limit, err = c.bus.ReadWord(addr + 4)
	if err != nil {
		return 0, 0, 0, 0, addrFault(ReadFault, addr+4)
	}
	kb, err := c.bus.ReadByte(addr + 8)
	if err != nil {
		return 0, 0, 0, 0, addrFault(ReadFault, addr+8)
	}
	fb, err := c.bus.ReadByte(addr + 9)
	if err != nil {
		return 0, 0, 0, 0, addrFault(ReadFault, addr+9)
	}
	return base, limit, kb, fb, nil
}

// setSDTR implements SSDTR: installs a new descriptor-table base/length
// and, per the published compatibility behaviour, re-derives PEBA_base
// and PLBA_base from descriptors #0 and #1 of the new table.
func (c *CPU) setSDTR(base uint32, length uint8) *Fault {
	c.SDTRBase = base
	c.SDTRLen = length
	peba, err := c.bus.ReadWord(base)
	if err != nil {
		return addrFault(ReadFault, base)
	}
	plba, err := c.bus.ReadWord(base + 12)
	if err != nil {
		return addrFault(ReadFault, base+12)
	}
	c.PEBABase = peba
	c.PLBABase = plba
	return nil
}
