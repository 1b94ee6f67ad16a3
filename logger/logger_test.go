// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package logger

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
)

type recorder struct {
	lines []string
}

func (r *recorder) Info(args ...interface{})   { r.lines = append(r.lines, fmt.Sprint(args...)) }
func (r *recorder) Error(args ...interface{})  { r.lines = append(r.lines, fmt.Sprint(args...)) }
func (r *recorder) Fatal(args ...interface{})  { r.lines = append(r.lines, fmt.Sprint(args...)) }
func (r *recorder) Infof(f string, a ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(f, a...))
}
func (r *recorder) Errorf(f string, a ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(f, a...))
}
func (r *recorder) Fatalf(f string, a ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(f, a...))
}

func TestPrefixed(t *testing.T) {
	r := &recorder{}
	l := Prefixed(r, "table users: ")
	l.Info("grew")
	l.Infof("grew to %d", 32)
	l.Errorf("overflow at %d", 64)

	expected := []string{
		"table users: grew",
		"table users: grew to 32",
		"table users: overflow at 64",
	}
	if len(r.lines) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), r.lines)
	}
	for i := range expected {
		if r.lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], r.lines[i])
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anything observable.
	Discard.Info("ignored")
	Discard.Infof("ignored %d", 1)
	Discard.Error("ignored")
	Discard.Errorf("ignored %d", 2)
}

func TestStd(t *testing.T) {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	l := Prefixed(Std, "t: ")
	l.Info("grew")
	l.Errorf("overflow at %d", 64)

	expected := "t: grew\nt: overflow at 64\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("expected one line per message: %q", buf.String())
	}
}
