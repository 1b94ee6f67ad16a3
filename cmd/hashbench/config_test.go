// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"errors"
	"hash/maphash"
	"os"
	"strings"
	"testing"

	"github.com/aristanetworks/hashtable/hashmap"
	"github.com/aristanetworks/hashtable/logger"
	"github.com/aristanetworks/hashtable/test"
)

func TestParseConfig(t *testing.T) {
	cfg := []byte(`
seed: 42
tables:
- name: sessions
  kind: chained
  initial-capacity: 4
  max-load-factor: 0.5
  workload:
    keys: 100
    operations: 1000
    inserts: 0.5
    deletes: 0.2
- kind: open
  probing: quadratic
  max-capacity: 1024
  workload:
    keys: 10
    operations: 10
    inserts: 1
- workload:
    keys: 1
`)
	got, err := parseConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	expected := &Config{
		Seed: 42,
		Tables: []*TableDef{{
			Name:            "sessions",
			Kind:            kindChained,
			InitialCapacity: 4,
			MaxLoadFactor:   0.5,
			Workload:        Workload{Keys: 100, Operations: 1000, Inserts: 0.5, Deletes: 0.2},
		}, {
			Name:        "table1",
			Kind:        kindOpen,
			Probing:     "quadratic",
			MaxCapacity: 1024,
			Workload:    Workload{Keys: 10, Operations: 10, Inserts: 1},
		}, {
			Name:     "table2",
			Kind:     kindOpen,
			Workload: Workload{Keys: 1},
		}},
	}
	if diff := test.Diff(expected, got); diff != "" {
		t.Errorf("Unexpected config: %s", diff)
	}
}

func TestParseConfigErrors(t *testing.T) {
	testcases := map[string]struct {
		cfg string
		err string
	}{
		"empty": {
			cfg: `seed: 1`,
			err: "no tables",
		},
		"unknown field": {
			cfg: "tables:\n- name: a\n  buckets: 3\n",
			err: "failed to parse config",
		},
		"unknown kind": {
			cfg: "tables:\n- kind: cuckoo\n  workload: {keys: 1}\n",
			err: `unknown kind "cuckoo"`,
		},
		"unknown probing": {
			cfg: "tables:\n- probing: hopscotch\n  workload: {keys: 1}\n",
			err: "hopscotch",
		},
		"probing on chained": {
			cfg: "tables:\n- kind: chained\n  probing: linear\n  workload: {keys: 1}\n",
			err: "chained table",
		},
		"bad load factor": {
			cfg: "tables:\n- max-load-factor: 1.5\n  workload: {keys: 1}\n",
			err: "MaxLoadFactor",
		},
		"no keys": {
			cfg: "tables:\n- name: a\n",
			err: "positive number of keys",
		},
		"fractions": {
			cfg: "tables:\n- workload: {keys: 1, inserts: 0.7, deletes: 0.7}\n",
			err: "sum to at most 1",
		},
		"duplicate": {
			cfg: "tables:\n- name: a\n  workload: {keys: 1}\n- name: a\n  workload: {keys: 1}\n",
			err: "defined twice",
		},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.cfg))
			if err == nil {
				t.Fatalf("expected an error containing %q", tc.err)
			}
			if !strings.Contains(err.Error(), tc.err) {
				t.Errorf("expected an error containing %q, got %q", tc.err, err)
			}
		})
	}
}

func TestConfigErrorsWrapped(t *testing.T) {
	def := &TableDef{Kind: kindOpen, MaxLoadFactor: 2, Workload: Workload{Keys: 1}}
	if err := def.validate(); !errors.Is(err, hashmap.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewTable(t *testing.T) {
	seed := maphash.MakeSeed()
	for _, def := range []*TableDef{
		{Name: "c", Kind: kindChained},
		{Name: "o", Kind: kindOpen},
		{Name: "d", Kind: kindOpen, Probing: "double", InitialCapacity: 64},
	} {
		tbl, err := def.newTable(seed, logger.Discard)
		if err != nil {
			t.Fatalf("%s: %s", def.Name, err)
		}
		if _, ok := tbl.(*hashmap.Chained[uint64, uint64]); ok != (def.Kind == kindChained) {
			t.Errorf("%s: unexpected table type %T", def.Name, tbl)
		}
		if def.InitialCapacity != 0 && tbl.Cap() != def.InitialCapacity {
			t.Errorf("%s: expected capacity %d, got %d", def.Name, def.InitialCapacity, tbl.Cap())
		}
	}
}

func TestNewTableInvalid(t *testing.T) {
	for _, def := range []*TableDef{
		{Name: "c", Kind: kindChained, MaxLoadFactor: 0.5, MinLoadFactor: 0.9},
		{Name: "o", Kind: kindOpen, MaxLoadFactor: 2},
	} {
		tbl, err := def.newTable(maphash.MakeSeed(), logger.Discard)
		if !errors.Is(err, hashmap.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", def.Name, err)
		}
		if tbl != nil {
			t.Errorf("%s: expected a nil table, got %#v", def.Name, tbl)
		}
	}
}

func TestSampleConfig(t *testing.T) {
	cfg, err := os.ReadFile("sampleconfig.yml")
	if err != nil {
		t.Fatal(err)
	}
	config, err := parseConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Tables) != 5 {
		t.Errorf("expected 5 tables, got %d", len(config.Tables))
	}
}
