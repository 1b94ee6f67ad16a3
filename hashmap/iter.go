// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// Iterator walks the live entries of a table in slot order. The order is
// deterministic for a given table state but otherwise unspecified.
//
// Inserting a new key, deleting a key, clearing or resizing the table while
// an iterator is in use stops the iterator: Next returns false and Err
// returns ErrConcurrentModification. Replacing the value of an existing key
// is not a structural change. To restart iteration, call Iter again.
type Iterator[K any, V any] struct {
	key  K
	elem V
	err  error
	done bool

	version  func() uint64
	expected uint64
	advance  func() (K, V, bool)
}

func newIterator[K any, V any](version func() uint64,
	advance func() (K, V, bool)) *Iterator[K, V] {
	return &Iterator[K, V]{version: version, expected: version(), advance: advance}
}

// sliceIterator iterates over a snapshot, which cannot be invalidated.
func sliceIterator[K any, V any](snapshot []Entry[K, V]) *Iterator[K, V] {
	var i int
	return newIterator[K, V](func() uint64 { return 0 }, func() (K, V, bool) {
		if i >= len(snapshot) {
			var (
				k K
				v V
			)
			return k, v, false
		}
		e := snapshot[i]
		i++
		return e.Key, e.Value, true
	})
}

// Next advances the iterator, returning false once the entries are exhausted
// or the table was modified.
func (it *Iterator[K, V]) Next() bool {
	if it.done {
		return false
	}
	var (
		k K
		v V
	)
	if it.version() != it.expected {
		it.err = ErrConcurrentModification
		it.done = true
		it.key, it.elem = k, v
		return false
	}
	k, v, ok := it.advance()
	if !ok {
		it.done = true
	}
	it.key, it.elem = k, v
	return ok
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Elem returns the value of the current entry.
func (it *Iterator[K, V]) Elem() V {
	return it.elem
}

// Err returns ErrConcurrentModification if iteration was cut short by a
// change to the table.
func (it *Iterator[K, V]) Err() error {
	return it.err
}
