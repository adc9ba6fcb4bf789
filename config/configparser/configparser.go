/*
 * Series-Q - Configuration file parser
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

// Package configparser reads the external driver's configuration file: one
// directive per line, describing memory size, bus device attachments,
// segment register contents, priority-entry block entries, the memory
// protection key set, the CPU start address, and the segment descriptor
// table base and length.
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

/* Configuration file format:
 *
 * '#' starts a comment, rest of line ignored. Blank lines ignored.
 *
 * memory <kbytes>
 * device <base-hex> <size-hex> <kind>
 * segment <selector> <base-hex> <limit-hex> <key-hex> <flags-hex>
 * priority <level> <ps_base-hex> <ps_limit-hex> <ps_key-hex> <ps_flags-hex> <pc-hex>
 * mpk <key-hex> [<key-hex> ...]
 * start <pc-hex>
 * sdtr <base-hex> <len-decimal>
 */

// MemoryDirective sizes the reference RAM device, in kilobytes.
type MemoryDirective struct {
	KBytes uint32
}

// DeviceDirective attaches one device to the bus at (Base, Base+Size).
// Kind is "ram" or "console"; the driver resolves it to a concrete device.
type DeviceDirective struct {
	Base uint32
	Size uint32
	Kind string
}

// SegmentDirective loads one segment register set directly (bypassing the
// descriptor table, for initial program load).
type SegmentDirective struct {
	Selector uint8
	Base     uint32
	Limit    uint32
	Key      uint8
	Flags    uint8
}

// PriorityDirective holds the fields of one priority-entry block. Load only
// records it in Config.Priorities; cmd/seriesq does not write it to memory.
type PriorityDirective struct {
	Level    uint8
	PSBase   uint32
	PSLimit  uint32
	PSKey    uint8
	PSFlags  uint8
	PC       uint32
}

// Config is the fully parsed configuration file.
type Config struct {
	Memory     *MemoryDirective
	Devices    []DeviceDirective
	Segments   []SegmentDirective
	Priorities []PriorityDirective
	MPK        []uint8
	Start      *uint32
	SDTRBase   *uint32
	SDTRLen    *uint8
}

var lineNumber int

// Load reads and parses a configuration file in its entirety.
func Load(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line := &optionLine{line: raw}
		if parseErr := line.apply(cfg); parseErr != nil {
			return nil, parseErr
		}
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
	}
	return cfg, nil
}

// optionLine is one line of input together with a scan position, following
// the teacher's character-at-a-time scanner idiom.
type optionLine struct {
	line string
	pos  int
}

func (l *optionLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *optionLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

// token grabs the next run of non-space, non-comment characters.
func (l *optionLine) token() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *optionLine) apply(cfg *Config) error {
	keyword := strings.ToLower(l.token())
	if keyword == "" {
		return nil
	}

	switch keyword {
	case "memory":
		kb, err := l.hexOrDecUint32()
		if err != nil {
			return l.errf("memory: %v", err)
		}
		cfg.Memory = &MemoryDirective{KBytes: kb}

	case "device":
		base, err := l.hexUint32()
		if err != nil {
			return l.errf("device: bad base: %v", err)
		}
		size, err := l.hexUint32()
		if err != nil {
			return l.errf("device: bad size: %v", err)
		}
		kind := strings.ToLower(l.token())
		if kind == "" {
			return l.errf("device: missing kind")
		}
		cfg.Devices = append(cfg.Devices, DeviceDirective{Base: base, Size: size, Kind: kind})

	case "segment":
		sel, err := l.hexUint8()
		if err != nil {
			return l.errf("segment: bad selector: %v", err)
		}
		base, err := l.hexUint32()
		if err != nil {
			return l.errf("segment: bad base: %v", err)
		}
		limit, err := l.hexUint32()
		if err != nil {
			return l.errf("segment: bad limit: %v", err)
		}
		key, err := l.hexUint8()
		if err != nil {
			return l.errf("segment: bad key: %v", err)
		}
		flags, err := l.hexUint8()
		if err != nil {
			return l.errf("segment: bad flags: %v", err)
		}
		cfg.Segments = append(cfg.Segments, SegmentDirective{
			Selector: sel, Base: base, Limit: limit, Key: key, Flags: flags,
		})

	case "priority":
		level, err := l.hexUint8()
		if err != nil {
			return l.errf("priority: bad level: %v", err)
		}
		psBase, err := l.hexUint32()
		if err != nil {
			return l.errf("priority: bad ps_base: %v", err)
		}
		psLimit, err := l.hexUint32()
		if err != nil {
			return l.errf("priority: bad ps_limit: %v", err)
		}
		psKey, err := l.hexUint8()
		if err != nil {
			return l.errf("priority: bad ps_key: %v", err)
		}
		psFlags, err := l.hexUint8()
		if err != nil {
			return l.errf("priority: bad ps_flags: %v", err)
		}
		pc, err := l.hexUint32()
		if err != nil {
			return l.errf("priority: bad pc: %v", err)
		}
		cfg.Priorities = append(cfg.Priorities, PriorityDirective{
			Level: level, PSBase: psBase, PSLimit: psLimit, PSKey: psKey, PSFlags: psFlags, PC: pc,
		})

	case "mpk":
		for {
			l.skipSpace()
			if l.isEOL() {
				break
			}
			key, err := l.hexUint8()
			if err != nil {
				return l.errf("mpk: %v", err)
			}
			cfg.MPK = append(cfg.MPK, key)
		}

	case "start":
		pc, err := l.hexUint32()
		if err != nil {
			return l.errf("start: %v", err)
		}
		cfg.Start = &pc

	case "sdtr":
		base, err := l.hexUint32()
		if err != nil {
			return l.errf("sdtr: bad base: %v", err)
		}
		length, err := l.decUint8()
		if err != nil {
			return l.errf("sdtr: bad length: %v", err)
		}
		cfg.SDTRBase = &base
		cfg.SDTRLen = &length

	default:
		return l.errf("unknown directive %q", keyword)
	}

	l.skipSpace()
	if !l.isEOL() {
		return l.errf("unexpected trailing text: %q", l.line[l.pos:])
	}
	return nil
}

func (l *optionLine) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", lineNumber, fmt.Sprintf(format, args...))
}

func (l *optionLine) hexUint32() (uint32, error) {
	tok := l.token()
	v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 32)
	return uint32(v), err
}

func (l *optionLine) hexUint8() (uint8, error) {
	tok := l.token()
	v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 8)
	return uint8(v), err
}

func (l *optionLine) decUint8() (uint8, error) {
	tok := l.token()
	v, err := strconv.ParseUint(tok, 10, 8)
	return uint8(v), err
}

// hexOrDecUint32 accepts either base: used for "memory" where plain decimal
// reads more naturally.
func (l *optionLine) hexOrDecUint32() (uint32, error) {
	tok := l.token()
	if v, err := strconv.ParseUint(tok, 10, 32); err == nil {
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 32)
	return uint32(v), err
}
