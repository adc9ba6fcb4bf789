/*
 * Series-Q - bus arbitration channel.
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

// Package channel implements the BRQ/BGR bus-request/bus-grant rendezvous
// that hands exclusive bus ownership from the CPU to one peripheral and
// back. A Channel holds no pointer to the CPU and no pointer to the Bus;
// it is a pure two-party handshake shared between exactly one CPU and one
// peripheral goroutine, each separately holding whatever bus handle they
// need.
package channel

import "sync"

// Channel mediates one peripheral's exclusive access to the bus. The CPU
// polls CheckPending/Open; the peripheral calls InChannel.
type Channel struct {
	mu  sync.Mutex
	cnd *sync.Cond
	brq bool // bus request, raised by the peripheral
	bgr bool // bus grant, raised by the CPU
}

// New returns an idle channel.
func New() *Channel {
	c := &Channel{}
	c.cnd = sync.NewCond(&c.mu)
	return c
}

// InChannel is the peripheral side: it asserts BRQ, waits for BGR, runs f
// while the CPU has released the bus (f takes the bus lock itself; a caller
// that held the bus lock while waiting for BGR would keep the CPU from ever
// reaching its channel poll), deasserts BRQ, and returns
// f's result. Channel operations never fail; they only suspend until the
// CPU services them on some future cycle's poll.
func InChannel[T any](c *Channel, f func() T) T {
	c.mu.Lock()
	c.brq = true
	c.cnd.Broadcast()
	for !c.bgr {
		c.cnd.Wait()
	}
	c.mu.Unlock()

	result := f()

	c.mu.Lock()
	c.brq = false
	c.cnd.Broadcast()
	c.mu.Unlock()
	return result
}

// CheckPending is the CPU side: a non-blocking look at whether the
// peripheral has asserted BRQ.
func (c *Channel) CheckPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brq
}

// Open is the CPU side: called with the bus NOT held. It asserts BGR, waits
// for the peripheral to lower BRQ once its transfer completes, and
// deasserts BGR. Ordering within the channel is therefore
// BRQ up, BGR up, (peripheral holds the bus), BRQ down, BGR down.
func (c *Channel) Open() {
	c.mu.Lock()
	c.bgr = true
	c.cnd.Broadcast()
	for c.brq {
		c.cnd.Wait()
	}
	c.bgr = false
	c.mu.Unlock()
}
