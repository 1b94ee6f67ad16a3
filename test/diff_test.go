// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package test

import (
	"strings"
	"testing"
)

type pair struct {
	Key   string
	value int
}

func TestDiff(t *testing.T) {
	testcases := []struct {
		name  string
		a, b  interface{}
		equal bool
		want  string
	}{{
		name:  "equal slices",
		a:     []pair{{"alice", 1}, {"bob", 2}},
		b:     []pair{{"alice", 1}, {"bob", 2}},
		equal: true,
	}, {
		name: "unexported field differs",
		a:    pair{"alice", 1},
		b:    pair{"alice", 2},
		want: "value",
	}, {
		name: "maps",
		a:    map[string]int{"carol": 3},
		b:    map[string]int{"carol": 4},
		want: "carol",
	}}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := Diff(tc.a, tc.b)
			if tc.equal {
				if d != "" {
					t.Errorf("expected no diff, got:\n%s", d)
				}
				return
			}
			if d == "" {
				t.Fatal("expected a diff")
			}
			if !strings.Contains(d, tc.want) {
				t.Errorf("diff does not mention %q:\n%s", tc.want, d)
			}
		})
	}
}
