/*
 * Series-Q - console peripheral tests.
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

package peripheral

import (
	"context"
	"testing"
	"time"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/channel"
	"github.com/sqarch/seriesq/emu/irq"
	"github.com/sqarch/seriesq/emu/memory"
)

// A fed byte reaches the mailbox address and posts the configured
// interrupt level, once the CPU side polls and opens the channel.
func TestConsoleDeliversByteAndPostsIRQ(t *testing.T) {
	b := bus.New()
	b.Attach(0, 0x100, memory.New(0x100))
	ch := channel.New()
	lines := irq.New()

	c := NewConsole(Config{
		Bus:         b,
		Channel:     ch,
		IRQLines:    lines,
		IRQLevel:    2,
		IRQCode:     -1,
		MailboxAddr: 0x10,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Feed('A')

	deadline := time.Now().Add(time.Second)
	for !ch.CheckPending() {
		if time.Now().After(deadline) {
			t.Fatal("channel never went pending")
		}
		time.Sleep(time.Millisecond)
	}
	ch.Open()

	deadline = time.Now().Add(time.Second)
	for !lines.Pending(2) {
		if time.Now().After(deadline) {
			t.Fatal("IRQ level 2 never went pending")
		}
		time.Sleep(time.Millisecond)
	}

	b.Lock()
	got, err := b.ReadByte(0x10)
	b.Unlock()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if got != 'A' {
		t.Errorf("mailbox = %q, want 'A'", got)
	}
	if lines.Code(2) != -1 {
		t.Errorf("IRQ code = %d, want -1", lines.Code(2))
	}
}
