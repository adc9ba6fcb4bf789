/*
 * Series-Q - logger tests.
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
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlePlainRecordHasNoLevelPrefix(t *testing.T) {
	var buf bytes.Buffer
	debug := true
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	log := slog.New(h)

	log.Info("hello")

	if strings.Contains(buf.String(), "[L") {
		t.Errorf("output = %q, want no priority-level prefix", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q, want it to contain the message", buf.String())
	}
}

func TestWithPriorityLevelPrefixesRecords(t *testing.T) {
	var buf bytes.Buffer
	debug := true
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	log := slog.New(h.WithPriorityLevel(5))

	log.Info("level entered")

	if !strings.Contains(buf.String(), "[L5]") {
		t.Errorf("output = %q, want it to contain [L5]", buf.String())
	}
	if strings.Contains(buf.String(), "plevel=") {
		t.Errorf("output = %q, want plevel consumed into the prefix, not echoed as an attr", buf.String())
	}
}

func TestWithPriorityLevelLeavesOtherAttrsIntact(t *testing.T) {
	var buf bytes.Buffer
	debug := true
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	log := slog.New(h.WithPriorityLevel(2))

	log.Debug("fault raised", "code", -3)

	out := buf.String()
	if !strings.Contains(out, "[L2]") {
		t.Errorf("output = %q, want [L2] prefix", out)
	}
	if !strings.Contains(out, "-3") {
		t.Errorf("output = %q, want the code attribute preserved", out)
	}
}
