// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package test

import (
	"errors"
	"fmt"
	"testing"
)

// ShouldPanic fails t unless fn panics.
func ShouldPanic(t testing.TB, fn func()) {
	t.Helper()
	if _, ok := recovered(fn); !ok {
		t.Errorf("The function %p should have panicked", fn)
	}
}

// ShouldPanicWith fails t unless fn panics with a value matching want.
// An error want matches a panic value for which errors.Is holds. A string
// want matches a panic with that string, or with an error of that message.
func ShouldPanicWith(t testing.TB, want interface{}, fn func()) {
	t.Helper()
	r, ok := recovered(fn)
	if !ok {
		t.Errorf("The function %p should have panicked with %#v", fn, want)
		return
	}
	switch want := want.(type) {
	case error:
		if err, isErr := r.(error); !isErr || !errors.Is(err, want) {
			t.Errorf("The function %p panicked with %#v, expected an error matching %q",
				fn, r, want)
		}
	case string:
		got, isStr := r.(string)
		if err, isErr := r.(error); isErr {
			got, isStr = err.Error(), true
		}
		if !isStr {
			t.Errorf("The function %p panicked with not string/error: %#v", fn, r)
			return
		}
		if d := Diff(want, got); d != "" {
			t.Errorf("The function %p panicked with the wrong message.\n"+
				"Expected: %#v\nReceived: %#v\nDiff:%s", fn, want, got, d)
		}
	default:
		t.Fatalf("ShouldPanicWith: unsupported expectation %s", fmt.Sprintf("%T", want))
	}
}

func recovered(fn func()) (r interface{}, panicked bool) {
	defer func() {
		if panicked {
			r = recover()
		}
	}()
	panicked = true
	fn()
	panicked = false
	return nil, false
}
