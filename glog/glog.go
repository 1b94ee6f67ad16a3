// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package glog

import (
	"bytes"
	"io"

	"github.com/aristanetworks/glog"
	"github.com/aristanetworks/hashtable/logger"
)

var _ logger.Logger = (*Glog)(nil)

// Glog is an empty type that allows to pass glog as a logger, implementing logger.Logger
type Glog struct {
	// default value of glog.Level is 0
	InfoLevel glog.Level
}

// New returns a Glog logging info messages at verbosity level.
func New(level int) *Glog {
	return &Glog{InfoLevel: glog.Level(level)}
}

// Enabled reports whether info messages are currently emitted.
func (g *Glog) Enabled() bool {
	return bool(glog.V(g.InfoLevel))
}

// Info logs at the info level
func (g *Glog) Info(args ...interface{}) {
	glog.V(g.InfoLevel).Info(args...)
}

// Infof logs at the info level, with format
func (g *Glog) Infof(format string, args ...interface{}) {
	glog.V(g.InfoLevel).Infof(format, args...)
}

// Error logs at the error level
func (g *Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

// Errorf logs at the error level, with format
func (g *Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Fatal logs at the fatal level
func (g *Glog) Fatal(args ...interface{}) {
	glog.Fatal(args...)
}

// Fatalf logs at the fatal level, with format
func (g *Glog) Fatalf(format string, args ...interface{}) {
	glog.Fatalf(format, args...)
}

// SuppressLines adds filtering to glog output so that all lines containing
// any of the supplied substrings are removed. It returns a function that
// flushes any partial line and reverts glog to its previous output.
// A typical use case is test functions where certain warning or error messages
// are expected, so they only add noise to the output of `go test`.
//
// Example usage:
//
//	import aglog "github.com/aristanetworks/hashtable/glog"
//	func TestExampleFunction(t *testing.T) {
//		reset := aglog.SuppressLines(
//			`Warning: non-ASCII value in test A`,
//			`Test B is failing with exit code 0`,
//		)
//		defer reset()
//		...
//	}
func SuppressLines(substrToSuppress ...string) func() {
	patterns := make([][]byte, len(substrToSuppress))
	for i, substr := range substrToSuppress {
		patterns[i] = []byte(substr)
	}
	return filterOutput(func(line []byte) bool {
		for _, p := range patterns {
			if bytes.Contains(line, p) {
				return false
			}
		}
		return true
	})
}

// SuppressResizes removes the lines tables log when they rehash, for tests
// driving tables through many resizes with a Glog logger.
func SuppressResizes() func() {
	return SuppressLines(resizePrefix)
}

const resizePrefix = "hashmap: rehashed "

// filterOutput sends glog output through a lineFilter calling keep.
func filterOutput(keep func(line []byte) bool) func() {
	lf := &lineFilter{keep: keep}
	lf.next = glog.SetOutput(lf)
	return func() {
		lf.flush()
		glog.SetOutput(lf.next)
	}
}

// lineFilter buffers writes until a line is complete, then forwards it to
// next if keep accepts it.
type lineFilter struct {
	next    io.Writer
	keep    func(line []byte) bool
	pending bytes.Buffer
	err     error
}

func (lf *lineFilter) Write(data []byte) (int, error) {
	if lf.err != nil {
		return 0, lf.err
	}
	lf.pending.Write(data)
	for {
		i := bytes.IndexByte(lf.pending.Bytes(), '\n')
		if i < 0 {
			return len(data), nil
		}
		line := lf.pending.Next(i + 1)
		if !lf.keep(line) {
			continue
		}
		if _, err := lf.next.Write(line); err != nil {
			lf.err = err
			return len(data), err
		}
	}
}

func (lf *lineFilter) flush() {
	if lf.err != nil || lf.pending.Len() == 0 {
		return
	}
	if line := lf.pending.Bytes(); lf.keep(line) {
		lf.next.Write(line)
	}
	lf.pending.Reset()
}
