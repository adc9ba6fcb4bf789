/*
 * Series-Q - console peripheral.
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

// Package peripheral holds concrete bus-mastering devices. Console is a
// worked example: queued input bytes, each transferred on its own
// through a bus-arbitration channel, adapted from the teacher's telnet
// terminal (emu/model1052) onto the BRQ/BGR handshake instead of an
// S/370 channel-command protocol.
package peripheral

import (
	"context"
	"log/slog"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/channel"
	"github.com/sqarch/seriesq/emu/irq"
)

// Console is a channel-mastering peripheral: it owns no bus region of its
// own. Each queued input byte is delivered by bus-mastering a single-byte
// write to MailboxAddr, followed by posting IRQLevel so the CPU knows a
// byte arrived. It runs on its own goroutine via Run.
type Console struct {
	Bus         *bus.Bus
	Channel     *channel.Channel
	IRQLines    *irq.Lines
	IRQLevel    int
	IRQCode     int8
	MailboxAddr uint32

	log   *slog.Logger
	input chan byte
}

// Config is the construction-time wiring for a Console.
type Config struct {
	Bus         *bus.Bus
	Channel     *channel.Channel
	IRQLines    *irq.Lines
	IRQLevel    int
	IRQCode     int8
	MailboxAddr uint32
	Logger      *slog.Logger
}

// NewConsole returns a Console peripheral ready to have input queued and
// then Run on its own goroutine.
func NewConsole(cfg Config) *Console {
	c := &Console{
		Bus:         cfg.Bus,
		Channel:     cfg.Channel,
		IRQLines:    cfg.IRQLines,
		IRQLevel:    cfg.IRQLevel,
		IRQCode:     cfg.IRQCode,
		MailboxAddr: cfg.MailboxAddr,
		log:         cfg.Logger,
		input:       make(chan byte, 256),
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Feed queues one byte of input for delivery to the CPU. Safe to call from
// any goroutine (the driver's inspector, a net.Conn reader, a test).
func (c *Console) Feed(b byte) {
	c.input <- b
}

// Run delivers queued input bytes until ctx is done. Each delivery
// bus-masters a single write via channel.InChannel, then posts an
// interrupt so the CPU's next cycle can pick it up — the full
// BRQ up -> BGR up -> (transfer) -> BRQ down -> BGR down round trip from
// the peripheral side.
func (c *Console) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-c.input:
			channel.InChannel(c.Channel, func() struct{} {
				c.Bus.Lock()
				defer c.Bus.Unlock()
				if err := c.Bus.WriteByte(c.MailboxAddr, b); err != nil {
					c.log.Error("console mailbox write failed", "error", err)
				}
				return struct{}{}
			})
			c.IRQLines.Post(c.IRQLevel, c.IRQCode)
			c.log.Debug("console delivered byte", "byte", b, "level", c.IRQLevel)
		}
	}
}
