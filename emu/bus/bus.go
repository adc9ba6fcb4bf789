/*
 * Series-Q - shared system bus.
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

// Package bus multiplexes the CPU and peripheral bus masters onto a single
// ordered list of (base, size, device) ranges. Exactly one holder — the CPU
// thread or a peripheral granted the bus by an arbitration channel — may be
// inside a bus operation at a time; see package channel for the handshake
// that hands the bus to a peripheral.
//
// The Bus does not take its own lock per access: a holder calls Lock once,
// performs as many accesses as one instruction or one channel transfer
// needs, then calls Unlock. This is what lets "all of one instruction's
// memory accesses happen while the CPU holds the bus lock continuously"
// (the invariant the core relies on) be literally true of the Go mutex,
// not just a logical fiction.
package bus

import (
	"sync"

	dv "github.com/sqarch/seriesq/emu/device"
)

type entry struct {
	base   uint32
	size   uint32
	device dv.Device
	mu     sync.Mutex // wraps the device, acquired for the duration of one access
}

// Bus is a shared-ownership handle: the CPU and every peripheral hold a
// pointer to the same Bus, never to each other. It has no back-pointer to
// the CPU, per the design note against cyclic references.
type Bus struct {
	mu      sync.Mutex
	entries []*entry
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Attach appends a (base, size, device) range. Ranges are matched in
// registration order; overlaps resolve to the first registered range, an
// observable compatibility point hosts may rely on.
func (b *Bus) Attach(base, size uint32, device dv.Device) {
	b.Lock()
	defer b.Unlock()
	b.entries = append(b.entries, &entry{base: base, size: size, device: device})
}

// Lock acquires exclusive ownership of the bus. Must be held by the caller
// before any of the access methods below are called.
func (b *Bus) Lock() {
	b.mu.Lock()
}

// Unlock releases ownership acquired by Lock.
func (b *Bus) Unlock() {
	b.mu.Unlock()
}

// find returns the first entry containing addr. Caller must hold the bus
// lock.
func (b *Bus) find(addr uint32) *entry {
	for _, e := range b.entries {
		if addr >= e.base && addr < e.base+e.size {
			return e
		}
	}
	return nil
}

func (b *Bus) ReadByte(addr uint32) (uint8, error) {
	e := b.find(addr)
	if e == nil {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.ReadByte(addr - e.base)
}

func (b *Bus) ReadHalf(addr uint32) (uint16, error) {
	e := b.find(addr)
	if e == nil {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.ReadHalf(addr - e.base)
}

func (b *Bus) ReadWord(addr uint32) (uint32, error) {
	e := b.find(addr)
	if e == nil {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.ReadWord(addr - e.base)
}

// ReadHalfBig is the instruction-fetch style read: big-endian composition.
// A device that does not implement device.HalfBigReader refuses it with
// AccessViolation.
func (b *Bus) ReadHalfBig(addr uint32) (uint16, error) {
	e := b.find(addr)
	if e == nil {
		return 0, &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	hb, ok := e.device.(dv.HalfBigReader)
	if !ok {
		return 0, &dv.BusError{Kind: dv.AccessViolation, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return hb.ReadHalfBig(addr - e.base)
}

func (b *Bus) WriteByte(addr uint32, value uint8) error {
	e := b.find(addr)
	if e == nil {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.WriteByte(addr-e.base, value)
}

func (b *Bus) WriteHalf(addr uint32, value uint16) error {
	e := b.find(addr)
	if e == nil {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.WriteHalf(addr-e.base, value)
}

func (b *Bus) WriteWord(addr uint32, value uint32) error {
	e := b.find(addr)
	if e == nil {
		return &dv.BusError{Kind: dv.InvalidAddress, Addr: addr}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device.WriteWord(addr-e.base, value)
}

// WithLock runs fn with the bus held, for a single logical transfer. Most
// callers (the CPU's fetch/execute phase, a peripheral's channel body, the
// driver's inspector console) call Lock/Unlock directly instead; WithLock is
// the convenience form for one-shot callers.
func (b *Bus) WithLock(fn func()) {
	b.Lock()
	defer b.Unlock()
	fn()
}
