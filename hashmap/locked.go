// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import "sync"

// Locked makes a Table safe for concurrent use. Lookups share a read lock;
// inserts, deletes and the resizes they trigger hold the write lock.
//
// Iter and Range work on a snapshot taken under the read lock, so they never
// report ErrConcurrentModification and their callback may use the table.
type Locked[K any, V any] struct {
	mu sync.RWMutex
	t  Table[K, V]
}

// NewLocked wraps t. t must not be used directly afterwards.
func NewLocked[K any, V any](t Table[K, V]) *Locked[K, V] {
	return &Locked[K, V]{t: t}
}

// Insert associates k with v.
func (l *Locked[K, V]) Insert(k K, v V) (V, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Insert(k, v)
}

// Get returns the value associated with k.
func (l *Locked[K, V]) Get(k K) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Get(k)
}

// Delete removes k.
func (l *Locked[K, V]) Delete(k K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Delete(k)
}

// Contains reports whether k is present.
func (l *Locked[K, V]) Contains(k K) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Contains(k)
}

func (l *Locked[K, V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Len()
}

func (l *Locked[K, V]) Cap() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Cap()
}

func (l *Locked[K, V]) LoadFactor() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.LoadFactor()
}

func (l *Locked[K, V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.t.Clear()
}

// Entries returns a snapshot of every entry.
func (l *Locked[K, V]) Entries() []Entry[K, V] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Entries()
}

// Iter returns an iterator over a snapshot of the table.
func (l *Locked[K, V]) Iter() *Iterator[K, V] {
	return sliceIterator(l.Entries())
}

// Range calls f on a snapshot of the table until f returns false.
func (l *Locked[K, V]) Range(f func(k K, v V) bool) error {
	return rangeIter(l.Iter(), f)
}

func (l *Locked[K, V]) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Stats()
}
