// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aristanetworks/hashtable/hashmap"
	"golang.org/x/exp/rand"
)

// ctxCheckInterval is how many operations run between cancellation checks.
const ctxCheckInterval = 1024

// Result counts what a workload did to its table.
type Result struct {
	Inserts  uint64 // new keys
	Updates  uint64 // inserts of keys already present
	Deletes  uint64 // deletes that removed something
	Misses   uint64 // deletes and lookups of absent keys
	Hits     uint64 // lookups that found their key
	Duration time.Duration
	Stats    hashmap.Stats
}

func (r Result) String() string {
	return fmt.Sprintf("inserts=%d updates=%d deletes=%d hits=%d misses=%d in %s, %+v",
		r.Inserts, r.Updates, r.Deletes, r.Hits, r.Misses, r.Duration, r.Stats)
}

// run applies w to t, drawing keys and operations from a generator seeded
// with seed. Values are the index of the operation that stored them, and are
// checked on lookup.
func run(ctx context.Context, w Workload, t hashmap.Table[uint64, uint64],
	seed uint64) (Result, error) {
	var res Result
	rng := rand.New(rand.NewSource(seed))
	stored := make(map[uint64]uint64)
	start := time.Now()
	for i := 0; i < w.Operations; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		k := rng.Uint64n(w.Keys)
		op := rng.Float64()
		switch {
		case op < w.Inserts:
			_, replaced, err := t.Insert(k, uint64(i))
			if err != nil {
				return res, fmt.Errorf("insert of key %d: %w", k, err)
			}
			if replaced {
				res.Updates++
			} else {
				res.Inserts++
			}
			stored[k] = uint64(i)
		case op < w.Inserts+w.Deletes:
			if _, ok := t.Delete(k); ok {
				res.Deletes++
			} else {
				res.Misses++
			}
			delete(stored, k)
		default:
			v, ok := t.Get(k)
			want, present := stored[k]
			if ok != present || v != want {
				return res, fmt.Errorf("lookup of key %d returned (%d, %t), expected (%d, %t)",
					k, v, ok, want, present)
			}
			if ok {
				res.Hits++
			} else {
				res.Misses++
			}
		}
	}
	res.Duration = time.Since(start)
	if t.Len() != len(stored) {
		return res, fmt.Errorf("table holds %d entries, expected %d", t.Len(), len(stored))
	}
	res.Stats = t.Stats()
	return res, nil
}
