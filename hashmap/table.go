// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements generic, resizable hash tables.
//
// Two collision strategies are provided. Chained keeps a list of entries per
// bucket. Open stores entries directly in its slot array and probes for
// alternate slots, using Robin Hood hashing by default or linear, quadratic
// or double hashing probes. Both grow before an insert would push the load
// factor past Config.MaxLoadFactor, and can optionally shrink after deletes.
//
// Tables are not safe for concurrent use. Wrap them with NewLocked when they
// are shared between goroutines.
package hashmap

// Table is the interface implemented by all tables in this package.
type Table[K any, V any] interface {
	// Insert associates k with v. If k was already present its previous
	// value is returned with replaced set. err is only ever a capacity
	// overflow, in which case the table is unchanged.
	Insert(k K, v V) (prev V, replaced bool, err error)
	// Get returns the value associated with k.
	Get(k K) (V, bool)
	// Delete removes k, returning its value.
	Delete(k K) (V, bool)
	// Contains reports whether k is present.
	Contains(k K) bool
	// Len returns the number of live entries.
	Len() int
	// Cap returns the number of slots or buckets.
	Cap() int
	// LoadFactor returns the occupied fraction used for resize decisions.
	LoadFactor() float64
	// Clear removes every entry, keeping the current capacity.
	Clear()
	// Iter returns an iterator over the live entries.
	Iter() *Iterator[K, V]
	// Range calls f for each entry until f returns false.
	Range(f func(k K, v V) bool) error
	// Entries returns a snapshot of every entry.
	Entries() []Entry[K, V]
	// Stats reports the table's shape.
	Stats() Stats
}

var (
	_ Table[string, int] = (*Chained[string, int])(nil)
	_ Table[string, int] = (*Open[string, int])(nil)
	_ Table[string, int] = (*Locked[string, int])(nil)
)

// Entry is a key/value pair.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Stats describes the shape of a table at a point in time.
type Stats struct {
	Len        int
	Capacity   int
	Tombstones int
	LoadFactor float64
	// Grows, Shrinks and Rehashes count resizes since creation. Rehashes
	// includes same-size rehashes that only purge tombstones.
	Grows    uint64
	Shrinks  uint64
	Rehashes uint64
	// MaxProbe is the longest chain of a Chained table, or the largest
	// distance of an Open table's entry from its ideal slot.
	MaxProbe int
}

func loadFactor(n, capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	return float64(n) / float64(capacity)
}

func entries[K any, V any](it *Iterator[K, V], size int) []Entry[K, V] {
	out := make([]Entry[K, V], 0, size)
	for it.Next() {
		out = append(out, Entry[K, V]{Key: it.Key(), Value: it.Elem()})
	}
	return out
}

func rangeIter[K any, V any](it *Iterator[K, V], f func(k K, v V) bool) error {
	for it.Next() {
		if !f(it.Key(), it.Elem()) {
			return nil
		}
	}
	return it.Err()
}
