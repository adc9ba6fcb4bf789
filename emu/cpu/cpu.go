/*
   Series-Q - main CPU fetch/execute cycle.

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

// Package cpu implements the Series-Q processor: a 32-bit, segmented-
// protection, priority-leveled instruction engine sharing a bus with
// arbitration channels. One CPU runs its cycle loop on its own goroutine;
// everything it touches outside its own registers goes through the bus
// lock.
package cpu

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/channel"
	"github.com/sqarch/seriesq/emu/irq"
)

// CPU holds the entire architectural and micro-architectural state of one
// Series-Q processor.
type CPU struct {
	R [16]uint32 // general registers, R[0] forced to zero each cycle
	F [16]uint8  // status/flag file; F[0] PLGEVCSB, F[8] state+level, F[10..15] fault record

	SSel   [16]uint8  // segment selectors
	SBase  [16]uint32 // segment bases
	SLimit [16]uint32 // segment limits
	SKey   [16]uint8  // segment protection keys
	SFlags [16]uint8  // segment R/W/X/U flags

	MPK [16]uint8 // memory protection key set

	SDTRBase uint32 // segment descriptor table base
	SDTRLen  uint8  // segment descriptor table length, entries

	PEBABase uint32 // priority-entry block array base
	PLBABase uint32 // priority-link block array base

	cycles uint64
	running atomic.Bool
	skip    bool // set by IF/IFN, consumed (and cleared) by the next cycle

	curIW0 uint16 // first instruction half-word of the instruction in flight

	bus      *bus.Bus
	channels []*channel.Channel
	irqLines *irq.Lines

	log *slog.Logger

	rrTable  [64]rrOp
	memTable [16]func(*CPU, *decoded) *Fault
}

// Config is the construction-time wiring for a CPU: the bus it shares with
// memory and peripherals, the arbitration channels it polls each cycle, and
// the interrupt lines peripherals post to.
type Config struct {
	Bus      *bus.Bus
	Channels []*channel.Channel
	IRQLines *irq.Lines
	Logger   *slog.Logger
}

// NewCPU returns a CPU wired to the given bus, channels, and interrupt
// lines, halted, with PC and all segment/priority state zeroed. Set
// R[15]/segment state directly before Run.
func NewCPU(cfg Config) *CPU {
	c := &CPU{
		bus:      cfg.Bus,
		channels: cfg.Channels,
		irqLines: cfg.IRQLines,
		log:      cfg.Logger,
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.rrTable = newRRTable()
	c.memTable = newMemTable()
	return c
}

// Running reports whether the cycle loop would currently step; it goes
// false on STOP, on an unrecoverable fault loop, or after Halt.
func (c *CPU) Running() bool {
	return c.running.Load()
}

// Halt stops the cycle loop before its next step.
func (c *CPU) Halt() {
	c.running.Store(false)
}

// Start marks the CPU runnable, ready for Run or repeated Step calls.
func (c *CPU) Start() {
	c.running.Store(true)
}

// PriorityLevel returns the priority level the CPU is currently entered
// at (F[8] bits 1..3), for callers outside the package — the inspector
// console's prompt, in particular — that want to show it without
// reaching into F directly.
func (c *CPU) PriorityLevel() int {
	return c.currentLevel()
}

// Cycles returns the wrapping cycle counter incremented once per Step.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Run steps the CPU until Running() goes false or ctx is done.
func (c *CPU) Run(ctx context.Context) {
	for c.Running() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		c.Step()
	}
}

// Step executes the six-step cycle: force R[0]=0, fetch, skip-or-execute,
// poll interrupt lines, poll arbitration channels, advance the cycle
// counter. A fetch fault skips straight to the channel poll, bypassing
// both execute and the interrupt-line poll for that cycle. The bus lock
// is held continuously across fetch, execute, and the interrupt-line
// poll (since fault delivery does bus I/O via plSet), and released only
// for the channel poll.
func (c *CPU) Step() {
	c.bus.Lock()

	c.R[0] = 0

	d, fetchFault := c.fetch()
	if fetchFault != nil {
		c.raiseFault(fetchFault.Code, fetchFault.Addr, fetchFault.HasAddr)
	} else {
		if c.skip {
			c.skip = false
		} else if f := c.execute(d); f != nil {
			c.raiseFault(f.Code, f.Addr, f.HasAddr)
		}

		// Service at most the single highest-numbered pending line per cycle.
		for level := irq.Levels - 1; level >= 0; level-- {
			if c.irqLines.Pending(level) {
				code := c.irqLines.Code(level)
				if c.plEsc(level, uint8(code)) {
					c.irqLines.Clear(level)
				}
				break
			}
		}
	}

	c.bus.Unlock()

	for _, ch := range c.channels {
		if ch.CheckPending() {
			ch.Open()
		}
	}

	c.cycles++
}

// fetch reads one instruction's half-word(s) through the PS segment,
// honoring its length from the first half-word's top two bits. The caller
// holds the bus lock.
func (c *CPU) fetch() (*decoded, *Fault) {
	pc := c.R[15]
	iw0, f := c.fetchHalf(pc)
	if f != nil {
		return nil, f
	}
	c.curIW0 = iw0

	length := instrLength(iw0)
	var iw1 uint16
	if length == 4 {
		iw1, f = c.fetchHalf(pc + 2)
		if f != nil {
			return nil, f
		}
	}

	c.R[15] = pc + uint32(length)
	d := decode(iw0, iw1, length)
	return &d, nil
}

// fetchHalf fetches the half-word at PS-relative offset pcOffset. Per
// §4.4, fetch_addr = S_base[PS] + PC.
func (c *CPU) fetchHalf(pcOffset uint32) (uint16, *Fault) {
	addr := c.SBase[segPS] + pcOffset
	if !c.accessCheck(segPS, addr, segX) {
		return 0, segFault(SegmentationFault)
	}
	v, err := c.bus.ReadHalfBig(addr)
	if err != nil {
		return 0, addrFault(ReadFault, addr)
	}
	return v, nil
}

// execute dispatches a decoded instruction to its family's table.
func (c *CPU) execute(d *decoded) *Fault {
	switch d.fam {
	case famRR:
		h := c.rrTable[d.opcode]
		if h == nil {
			return segFault(IllegalInstruction)
		}
		return h(c, d)
	case famRMX, famRM:
		op := d.memOp()
		if int(op) >= len(c.memTable) || c.memTable[op] == nil {
			return segFault(IllegalInstruction)
		}
		return c.memTable[op](c, d)
	default:
		return segFault(IllegalInstruction)
	}
}
