/*
 * Series-Q - external driver.
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

// Command seriesq wires a bus, memory, peripherals and a CPU from a
// configuration file, then hands control to the interactive inspector.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sqarch/seriesq/command/parser"
	"github.com/sqarch/seriesq/command/reader"
	"github.com/sqarch/seriesq/config/configparser"
	"github.com/sqarch/seriesq/emu/bus"
	"github.com/sqarch/seriesq/emu/channel"
	"github.com/sqarch/seriesq/emu/cpu"
	"github.com/sqarch/seriesq/emu/irq"
	"github.com/sqarch/seriesq/emu/memory"
	"github.com/sqarch/seriesq/emu/peripheral"
	"github.com/sqarch/seriesq/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "seriesq.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Println("unable to create log file:", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, new(bool)))
	slog.SetDefault(log)

	log.Info("Series-Q started")

	cfg, err := configparser.Load(*optConfig)
	if err != nil {
		log.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	b, lines, console, ch := buildSystem(cfg, log)

	c := cpu.NewCPU(cpu.Config{
		Bus:      b,
		Channels: ch,
		IRQLines: lines,
		Logger:   log,
	})
	for _, seg := range cfg.Segments {
		c.SBase[seg.Selector] = seg.Base
		c.SLimit[seg.Selector] = seg.Limit
		c.SKey[seg.Selector] = seg.Key
		c.SFlags[seg.Selector] = seg.Flags
	}
	copy(c.MPK[:], cfg.MPK)
	if cfg.Start != nil {
		c.R[15] = *cfg.Start
	}
	if cfg.SDTRBase != nil && cfg.SDTRLen != nil {
		c.SDTRBase = *cfg.SDTRBase
		c.SDTRLen = *cfg.SDTRLen
	}
	c.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if console != nil {
		go console.Run(ctx)
	}

	log.Info("entering inspector console")
	reader.ConsoleReader(&parser.Session{CPU: c, Bus: b})

	log.Info("Series-Q shutting down")
}

// buildSystem attaches every configured device to a fresh bus and returns
// the pieces the CPU and its one console peripheral need.
func buildSystem(cfg *configparser.Config, log *slog.Logger) (*bus.Bus, *irq.Lines, *peripheral.Console, []*channel.Channel) {
	b := bus.New()
	lines := irq.New()

	if cfg.Memory != nil {
		b.Attach(0, cfg.Memory.KBytes*1024, memory.New(cfg.Memory.KBytes*1024))
	}

	var console *peripheral.Console
	var channels []*channel.Channel
	irqLevel := 0
	for _, d := range cfg.Devices {
		switch d.Kind {
		case "ram":
			b.Attach(d.Base, d.Size, memory.New(d.Size))
		case "console":
			b.Attach(d.Base, d.Size, memory.New(d.Size))
			ch := channel.New()
			channels = append(channels, ch)
			console = peripheral.NewConsole(peripheral.Config{
				Bus:         b,
				Channel:     ch,
				IRQLines:    lines,
				IRQLevel:    irqLevel,
				IRQCode:     -1,
				MailboxAddr: d.Base,
				Logger:      log,
			})
			irqLevel++
		default:
			log.Warn("unknown device kind, skipping", "kind", d.Kind)
		}
	}

	return b, lines, console, channels
}
