// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package test

import (
	"errors"
	"fmt"
	"testing"
)

var errOverflow = errors.New("capacity overflow")

func TestShouldPanic(t *testing.T) {
	fn := func() { panic("Here we are") }

	ShouldPanic(t, fn)
}

func TestShouldPanicWith(t *testing.T) {
	ShouldPanicWith(t, "Here we are", func() { panic("Here we are") })
	ShouldPanicWith(t, "capacity overflow", func() { panic(errOverflow) })
	ShouldPanicWith(t, errOverflow, func() {
		panic(fmt.Errorf("insert: %w", errOverflow))
	})
}

func TestRecovered(t *testing.T) {
	if r, ok := recovered(func() {}); ok || r != nil {
		t.Errorf("recovered(no panic) = %v, %t", r, ok)
	}
	if r, ok := recovered(func() { panic(errOverflow) }); !ok || r != errOverflow {
		t.Errorf("recovered(panic) = %v, %t", r, ok)
	}
}
