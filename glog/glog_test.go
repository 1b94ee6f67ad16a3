// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package glog

import (
	"bytes"
	"strings"
	"testing"

	aglog "github.com/aristanetworks/glog"
)

func TestSuppressLines(t *testing.T) {
	b := &bytes.Buffer{}

	aglog.SetOutput(b)

	aglog.Info("Before suppression: not *excluded*")

	reset := SuppressLines("*excluded*", "[excluded]")

	aglog.Warning("initial stuff... *excluded*, not in output")
	aglog.Error("not excluded")
	aglog.Info("multiple lines -- this one is included\nbut this line is [excluded].")

	reset()

	aglog.Info("Lines after reset are not *excluded*.")

	got := strings.Split(b.String(), "\n")

	expected := []string{
		"Before suppression: not *excluded*",
		"not excluded",
		"multiple lines -- this one is included",
		"Lines after reset are not *excluded*.",
		"", // from final newline
	}

	match := func() bool {
		if len(got) != len(expected) {
			t.Logf("Unexpected number of lines; expected=%v, got=%v", len(expected), len(got))
			return false
		}

		r := true
		for i, gline := range got {
			exp := expected[i]
			if !strings.Contains(gline, exp) {
				t.Logf("Mismatch in line %v", i)
				r = false
			}
		}
		return r
	}

	if !match() {
		t.Log("Expected substrings:")
		for i, exp := range expected {
			t.Logf("  [%v] %#v", i, exp)
		}
		t.Log("Got:")
		for i, gline := range got {
			t.Logf("  [%v] %#v", i, gline)
		}
		t.Fail()
	}
}

func TestGlogVerbosity(t *testing.T) {
	b := &bytes.Buffer{}
	prev := aglog.SetOutput(b)
	defer aglog.SetOutput(prev)
	aglog.SetVGlobal("0")

	quiet := New(2)
	loud := New(0)
	if quiet.Enabled() {
		t.Error("level 2 logger enabled at verbosity 0")
	}
	if !loud.Enabled() {
		t.Error("level 0 logger disabled at verbosity 0")
	}
	quiet.Infof("rehashed %d slots", 8)
	loud.Infof("rehashed %d slots", 16)

	out := b.String()
	if strings.Contains(out, "rehashed 8 slots") {
		t.Errorf("verbose message leaked into output: %q", out)
	}
	if !strings.Contains(out, "rehashed 16 slots") {
		t.Errorf("expected message missing from output: %q", out)
	}
}

func TestSuppressResizes(t *testing.T) {
	b := &bytes.Buffer{}
	prev := aglog.SetOutput(b)
	defer aglog.SetOutput(prev)
	aglog.SetVGlobal("0")

	log := New(0)
	reset := SuppressResizes()
	log.Infof("hashmap: rehashed robinhood table from %d to %d slots", 16, 32)
	log.Infof("table %q ready", "sessions")
	reset()

	out := b.String()
	if strings.Contains(out, "rehashed") {
		t.Errorf("resize line not suppressed: %q", out)
	}
	if !strings.Contains(out, `table "sessions" ready`) {
		t.Errorf("unrelated line suppressed: %q", out)
	}
}

func TestLineFilterFlush(t *testing.T) {
	b := &bytes.Buffer{}
	lf := &lineFilter{next: b, keep: func(line []byte) bool {
		return !bytes.HasPrefix(line, []byte("drop"))
	}}
	lf.Write([]byte("keep 1\ndro"))
	lf.Write([]byte("p 2\nkeep"))
	if got := b.String(); got != "keep 1\n" {
		t.Errorf("before flush: %q", got)
	}
	lf.flush()
	if got := b.String(); got != "keep 1\nkeep" {
		t.Errorf("after flush: %q", got)
	}
}
