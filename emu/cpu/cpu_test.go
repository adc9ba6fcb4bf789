/*
   Series-Q - CPU seed-scenario tests.

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

import (
	"testing"
	"time"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/channel"
	"github.com/sqarch/seriesq/emu/irq"
	"github.com/sqarch/seriesq/emu/memory"
)

// newTestCPU wires a CPU to a single flat memory region covering the whole
// bus, supervisor state, PS mapped R/W/X over the full range.
func newTestCPU(t *testing.T, size uint32) (*CPU, *bus.Bus) {
	t.Helper()
	b := bus.New()
	b.Attach(0, size, memory.New(size))
	c := NewCPU(Config{Bus: b, IRQLines: irq.New()})
	c.SLimit[segPS] = size
	c.SFlags[segPS] = segR | segW | segX
	c.Start()
	return c, b
}

// writeInstrHalf stores a big-endian instruction half-word at addr, the
// layout ReadHalfBig/fetch expects.
func writeInstrHalf(t *testing.T, b *bus.Bus, addr uint32, iw uint16) {
	t.Helper()
	b.Lock()
	defer b.Unlock()
	if err := b.WriteByte(addr, uint8(iw>>8)); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if err := b.WriteByte(addr+1, uint8(iw)); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
}

func rrWord(op, regD, regR uint8) uint16 {
	return uint16(op)<<8 | uint16(regD&0xF)<<4 | uint16(regR&0xF)
}

func rmWords(op, regD, regR, segS uint8, idx12 uint32) (uint16, uint16) {
	return uint16(op)<<8 | uint16(regD&0xF)<<4 | uint16(regR&0xF),
		uint16(segS&0xF)<<12 | uint16(idx12&0xFFF)
}

// Seed scenario 1: condition-skip loop.
//
//	LA R1, 0:0,#16; SQ R1,#1; IF-skip; B -8; STOP
func TestSeedConditionSkipLoop(t *testing.T) {
	c, b := newTestCPU(t, 64)
	c.F[8] = f8AppState | (7 << f8LevelShift) // application state, level 7: STOP halts outright.
	c.MPK[0] = 0
	c.SKey[segPS] = 0

	iw0, iw1 := rmWords(rmBase+memLA, 1, 0, segPS, 16)
	writeInstrHalf(t, b, 0, iw0)
	writeInstrHalf(t, b, 2, iw1)
	writeInstrHalf(t, b, 4, rrWord(opSubQ, 1, 1))
	writeInstrHalf(t, b, 6, rrWord(opIf, condEQ, 0))
	bIw0, bIw1 := rmWords(rmBase+memBAL, 0, 15, segPS, 0xFF8)
	writeInstrHalf(t, b, 8, bIw0)
	writeInstrHalf(t, b, 10, bIw1)
	writeInstrHalf(t, b, 12, 0xFFFF) // STOP

	for i := 0; i < 1000 && c.Running(); i++ {
		c.Step()
	}
	if c.Running() {
		t.Fatal("CPU did not halt")
	}
	if c.R[1] != 0 {
		t.Errorf("R[1] = %d, want 0", c.R[1])
	}
}

// Seed scenario 2: shift family (the explicit §4.3 table: C = bit shifted
// out, P updated, other flags unchanged — the comparison-flag claim in the
// seed scenario's prose is not grounded in §4.3's table and is treated as
// non-normative; see DESIGN.md).
func TestSeedShiftFamily(t *testing.T) {
	c, _ := newTestCPU(t, 16)

	c.R[1] = 16
	c.R[1] = c.aluShift(c.R[1], quickBias(0, false), opShlQ)
	if c.R[1] != 32 {
		t.Errorf("16 shl 1 = %#x, want 32", c.R[1])
	}

	c.R[2] = 0xFFFFFFFC
	c.R[2] = c.aluShift(c.R[2], 1, opSar)
	if c.R[2] != 0xFFFFFFFE {
		t.Errorf("0xFFFFFFFC sar 1 = %#x, want 0xFFFFFFFE", c.R[2])
	}

	c.R[3] = 0xFFFFFFFF
	c.R[3] = c.aluShift(c.R[3], 1, opShr)
	if c.R[3] != 0x7FFFFFFF {
		t.Errorf("0xFFFFFFFF shr 1 = %#x, want 0x7FFFFFFF", c.R[3])
	}
	if c.F[0]&flagC == 0 {
		t.Error("expected C set from the bit shifted out")
	}
}

// Seed scenario 3: supervisor fault. SF to F[9] in application state faults
// SUPERVISOR_ACCESS, records the faulting iword, and escalates per F[8]
// bits 1..3.
func TestSeedSupervisorFault(t *testing.T) {
	c, b := newTestCPU(t, 0x3000)
	c.PLBABase = 0x1000
	c.PEBABase = 0x2000
	c.F[8] = f8AppState | (2 << f8LevelShift) // application, level 2

	iw := rrWord(opSF, 9, 1)
	writeInstrHalf(t, b, 0, iw)

	c.Step()

	if c.F[10] != uint8(iw>>8) || c.F[11] != uint8(iw) {
		t.Errorf("F[10..11] = %#x %#x, want faulting iword %#04x", c.F[10], c.F[11], iw)
	}
	if c.currentLevel() != 2 {
		t.Errorf("currentLevel() = %d, want 2 (escalated per F[8] bits 1..3)", c.currentLevel())
	}
}

// Seed scenario 4: segment load via SSELHC from a descriptor table entry.
func TestSeedSegmentLoadSSELHC(t *testing.T) {
	c, b := newTestCPU(t, 0x2000)
	c.SDTRBase = 0x1000
	c.SDTRLen = 4

	const sel = 3
	addr := c.SDTRBase + 12*sel
	b.Lock()
	_ = b.WriteWord(addr, 0xF000)
	_ = b.WriteWord(addr+4, 0x10000)
	_ = b.WriteByte(addr+8, 0xFF)
	_ = b.WriteByte(addr+9, 0xF0)
	b.Unlock()

	c.R[2] = sel
	iw := rrWord(opSSelHC, 3, 2)
	writeInstrHalf(t, b, 0, iw)
	c.Step()

	if c.SBase[3] != 0xF000 || c.SLimit[3] != 0x10000 || c.SKey[3] != 0xFF || c.SFlags[3] != 0xF0 {
		t.Errorf("S[3] = base %#x limit %#x key %#x flags %#x, want F000/10000/FF/F0",
			c.SBase[3], c.SLimit[3], c.SKey[3], c.SFlags[3])
	}
}

// Seed scenario 5: DMA round-trip — a peripheral reads a word the CPU
// pre-wrote, via InChannel, while the CPU spins on a no-op loop and the
// cycle counter keeps advancing.
func TestSeedDMARoundTrip(t *testing.T) {
	c, b := newTestCPU(t, 0x10000)
	ch := channel.New()
	c.channels = []*channel.Channel{ch}

	b.Lock()
	_ = b.WriteWord(0xF000, 0xDEADBEEF)
	b.Unlock()

	bIw0, bIw1 := rmWords(rmBase+memBAL, 0, 15, segPS, 0xFFC) // B -4: spin in place
	writeInstrHalf(t, b, 0, bIw0)
	writeInstrHalf(t, b, 2, bIw1)

	done := make(chan uint32, 1)
	go func() {
		done <- channel.InChannel(ch, func() uint32 {
			b.Lock()
			defer b.Unlock()
			v, _ := b.ReadWord(0xF000)
			return v
		})
	}()

	// Wait for BRQ so the transfer is served within the stepped cycles.
	for !ch.CheckPending() {
		time.Sleep(time.Millisecond)
	}

	before := c.Cycles()
	for i := 0; i < 100; i++ {
		c.Step()
	}

	got := <-done
	if got != 0xDEADBEEF {
		t.Errorf("peripheral read %#x, want 0xDEADBEEF", got)
	}
	if c.Cycles() == before {
		t.Error("cycle counter did not advance across the channel transfer")
	}
}

// Seed scenario 6: fault path for an illegal instruction in application
// state with F[8] bits 1..3 = 3, entering the level those bits name.
func TestSeedFaultPath(t *testing.T) {
	c, b := newTestCPU(t, 0x3000)
	c.PLBABase = 0x1000
	c.PEBABase = 0x2000
	c.F[8] = f8AppState | (3 << f8LevelShift)

	writeInstrHalf(t, b, 0, 0xFFFF)
	writeInstrHalf(t, b, 2, 0xFFFF)

	c.Step()

	if c.currentLevel() != 3 {
		t.Errorf("currentLevel() = %d, want 3", c.currentLevel())
	}
	if c.SSel[segPS] != 0xFD {
		t.Errorf("S_selector[PS] = %#x, want 0xFD (ILLEGAL_INSTRUCTION & 0xFF)", c.SSel[segPS])
	}
}
