/*
 * Series-Q - Wrapper for slog
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

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

// plevelKey is the attribute key the priority-level engine logs its
// current level under. A record carrying it gets a "[L<n>]" prefix
// instead of a trailing key=value pair, since the priority level a
// record was emitted at — which of the eight entry contexts was running
// when a fault or escalation happened — is the axis operators read
// these logs along, not just one attribute among others.
const plevelKey = "plevel"

type LogHandler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
	attrs []slog.Attr // bound via WithAttrs/WithPriorityLevel, rendered on every record
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogHandler{h: h.h.WithAttrs(attrs), mu: h.mu, out: h.out, debug: h.debug, attrs: merged}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{h: h.h.WithGroup(name), mu: h.mu, out: h.out, debug: h.debug, attrs: h.attrs}
}

// WithPriorityLevel returns a handler whose records are prefixed with the
// given priority level, for a CPU that wants every log line it emits
// while running at that level tagged without repeating "plevel" at every
// call site.
func (h *LogHandler) WithPriorityLevel(level uint8) *LogHandler {
	return h.WithAttrs([]slog.Attr{slog.Int(plevelKey, int(level))}).(*LogHandler)
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, level}

	plevel, rest := extractPriorityLevel(h.attrs)
	if plevel == nil {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == plevelKey {
				v := int(a.Value.Int64())
				plevel = &v
			}
			return true
		})
	}
	if plevel != nil {
		strs = append(strs, "[L"+strconv.Itoa(*plevel)+"]")
	}

	strs = append(strs, r.Message)

	for _, a := range rest {
		strs = append(strs, a.Value.String())
	}
	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == plevelKey {
				return true
			}
			strs = append(strs, a.Value.String())
			return true
		})
	}
	result := strings.Join(strs, " ") + "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	if h.debug || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// extractPriorityLevel pulls the bound "plevel" attribute (if any) out of
// a handler's accumulated attrs, returning the rest unchanged.
func extractPriorityLevel(attrs []slog.Attr) (*int, []slog.Attr) {
	var plevel *int
	rest := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == plevelKey {
			v := int(a.Value.Int64())
			plevel = &v
			continue
		}
		rest = append(rest, a)
	}
	return plevel, rest
}

func (h *LogHandler) SetDebug(debug *bool) {
	h.debug = *debug
}

func NewHandler(file io.Writer, opts *slog.HandlerOptions, debug *bool) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu:    &sync.Mutex{},
		debug: *debug,
	}
}
