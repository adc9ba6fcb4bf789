/*
 * Series-Q - inspector command parser tests.
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

package parser

import (
	"testing"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/cpu"
	"github.com/sqarch/seriesq/emu/irq"
	"github.com/sqarch/seriesq/emu/memory"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	b := bus.New()
	b.Attach(0, 0x1000, memory.New(0x1000))
	c := cpu.NewCPU(cpu.Config{Bus: b, IRQLines: irq.New()})
	return &Session{CPU: c, Bus: b}
}

func TestProcessCommandUnknown(t *testing.T) {
	s := newTestSession(t)
	if _, err := ProcessCommand("bogus", s); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestProcessCommandQuit(t *testing.T) {
	s := newTestSession(t)
	quit, err := ProcessCommand("quit", s)
	if err != nil || !quit {
		t.Fatalf("quit = %v, %v, want true, nil", quit, err)
	}
}

func TestProcessCommandStepAdvancesCycles(t *testing.T) {
	s := newTestSession(t)
	before := s.CPU.Cycles()
	if _, err := ProcessCommand("step", s); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.CPU.Cycles() != before+1 {
		t.Errorf("Cycles() = %d, want %d", s.CPU.Cycles(), before+1)
	}
}

func TestCompleteCmdPrefix(t *testing.T) {
	got := CompleteCmd("c")
	if len(got) != 1 || got[0] != "continue" {
		t.Errorf("CompleteCmd(%q) = %v, want [continue]", "c", got)
	}
}

func TestCmdMemRequiresTwoArgs(t *testing.T) {
	s := newTestSession(t)
	if _, err := ProcessCommand("mem 0x10", s); err == nil {
		t.Fatal("expected an error for a missing length argument")
	}
}
