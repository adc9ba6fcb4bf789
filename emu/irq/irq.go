/*
 * Series-Q - interrupt lines.
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

// Package irq holds the eight priority-indexed pending/code slots shared
// between peripherals (writers) and the CPU (reader/clearer). Slots are
// sequentially consistent atomics: a peripheral's write is visible to the
// CPU no later than its next channel-poll phase.
package irq

import "sync/atomic"

// Levels is the number of priority-indexed interrupt lines.
const Levels = 8

type line struct {
	pending atomic.Bool
	code    atomic.Int32
}

// Lines is the fixed set of eight interrupt lines.
type Lines struct {
	l [Levels]line
}

// New returns all-clear interrupt lines.
func New() *Lines {
	return &Lines{}
}

// Post marks level as pending with the given fault/interrupt code. Safe to
// call from any peripheral goroutine at any time.
func (li *Lines) Post(level int, code int8) {
	li.l[level].code.Store(int32(code))
	li.l[level].pending.Store(true)
}

// Pending reports whether level has a pending, unserviced interrupt.
func (li *Lines) Pending(level int) bool {
	return li.l[level].pending.Load()
}

// Code returns the code last posted to level. Only meaningful while
// Pending(level) is true.
func (li *Lines) Code(level int) int8 {
	return int8(li.l[level].code.Load())
}

// Clear drops the pending flag for level, once the CPU has accepted it.
func (li *Lines) Clear(level int) {
	li.l[level].pending.Store(false)
}
