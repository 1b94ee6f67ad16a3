// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package logger

import (
	"fmt"
	"log"
	"os"
)

// Logger is an interface to pass a generic logger without depending on either golang/glog or
// aristanetworks/glog
type Logger interface {
	// Info logs at the info level
	Info(args ...interface{})
	// Infof logs at the info level, with format
	Infof(format string, args ...interface{})
	// Error logs at the error level
	Error(args ...interface{})
	// Errorf logs at the error level, with format
	Errorf(format string, args ...interface{})
	// Fatal logs at the fatal level
	Fatal(args ...interface{})
	// Fatalf logs at the fatal level, with format
	Fatalf(format string, args ...interface{})
}

// Std implements the logger interface using the stdlib "log" package.
var Std Logger = std{log.Default()}

type std struct {
	*log.Logger
}

func (l std) Info(args ...interface{}) {
	l.Output(2, fmt.Sprint(args...))
}

func (l std) Infof(format string, args ...interface{}) {
	l.Output(2, fmt.Sprintf(format, args...))
}

func (l std) Error(args ...interface{}) {
	l.Output(2, fmt.Sprint(args...))
}

func (l std) Errorf(format string, args ...interface{}) {
	l.Output(2, fmt.Sprintf(format, args...))
}

// Discard drops info and error messages. Fatal messages are still written
// to stderr before exiting.
var Discard Logger = discard{}

type discard struct{}

func (discard) Info(args ...interface{})                  {}
func (discard) Infof(format string, args ...interface{})  {}
func (discard) Error(args ...interface{})                 {}
func (discard) Errorf(format string, args ...interface{}) {}

func (discard) Fatal(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func (discard) Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Prefixed returns a Logger prepending prefix to every message sent to l.
func Prefixed(l Logger, prefix string) Logger {
	return prefixed{l: l, prefix: prefix}
}

type prefixed struct {
	l      Logger
	prefix string
}

func (p prefixed) Info(args ...interface{}) {
	p.l.Info(p.prefix + fmt.Sprint(args...))
}

func (p prefixed) Infof(format string, args ...interface{}) {
	p.l.Infof(p.prefix+format, args...)
}

func (p prefixed) Error(args ...interface{}) {
	p.l.Error(p.prefix + fmt.Sprint(args...))
}

func (p prefixed) Errorf(format string, args ...interface{}) {
	p.l.Errorf(p.prefix+format, args...)
}

func (p prefixed) Fatal(args ...interface{}) {
	p.l.Fatal(p.prefix + fmt.Sprint(args...))
}

func (p prefixed) Fatalf(format string, args ...interface{}) {
	p.l.Fatalf(p.prefix+format, args...)
}
