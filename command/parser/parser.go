/*
 * Series-Q - inspector command parser.
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

// Package parser implements the five inspector commands (reg, mem, step,
// continue, quit) the driver's interactive console accepts, in the
// teacher's command/parser style: a flat command table keyed by name,
// each entry a function taking the tokenized argument list.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/cpu"
)

// Session is everything a command needs: the CPU being inspected and the
// bus it reads memory through.
type Session struct {
	CPU *cpu.CPU
	Bus *bus.Bus
}

type cmdFunc func(s *Session, args []string) (quit bool, err error)

var commands = map[string]cmdFunc{
	"reg":      cmdReg,
	"mem":      cmdMem,
	"step":     cmdStep,
	"continue": cmdContinue,
	"quit":     cmdQuit,
}

// Names lists every recognized command, for completion.
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	return names
}

// CompleteCmd returns every command name with the given prefix, in the
// shape github.com/peterh/liner's SetCompleter expects.
func CompleteCmd(line string) []string {
	var out []string
	for _, name := range Names() {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	return out
}

// ProcessCommand tokenizes and dispatches one line of input. It reports
// whether the session should end.
func ProcessCommand(line string, s *Session) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	fn, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return false, fmt.Errorf("unknown command: %s", fields[0])
	}
	return fn(s, fields[1:])
}

func cmdReg(s *Session, _ []string) (bool, error) {
	c := s.CPU
	for i := 0; i < 16; i += 4 {
		fmt.Printf("R%-2d=%08x R%-2d=%08x R%-2d=%08x R%-2d=%08x\n",
			i, c.R[i], i+1, c.R[i+1], i+2, c.R[i+2], i+3, c.R[i+3])
	}
	fmt.Printf("F0=%02x F8=%02x PC(R15)=%08x\n", c.F[0], c.F[8], c.R[15])
	return false, nil
}

func cmdMem(s *Session, args []string) (bool, error) {
	if len(args) != 2 {
		return false, errors.New("usage: mem <addr-hex> <len-decimal>")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("bad address: %w", err)
	}
	length, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return false, fmt.Errorf("bad length: %w", err)
	}

	s.Bus.Lock()
	defer s.Bus.Unlock()
	for i := uint64(0); i < length; i++ {
		v, err := s.Bus.ReadByte(uint32(addr) + uint32(i))
		if err != nil {
			return false, err
		}
		if i%16 == 0 {
			if i != 0 {
				fmt.Println()
			}
			fmt.Printf("%08x: ", uint32(addr)+uint32(i))
		}
		fmt.Printf("%02x ", v)
	}
	fmt.Println()
	return false, nil
}

func cmdStep(s *Session, _ []string) (bool, error) {
	s.CPU.Step()
	return false, nil
}

func cmdContinue(s *Session, _ []string) (bool, error) {
	s.CPU.Start()
	for s.CPU.Running() {
		s.CPU.Step()
	}
	fmt.Println("halted")
	return false, nil
}

func cmdQuit(_ *Session, _ []string) (bool, error) {
	return true, nil
}
