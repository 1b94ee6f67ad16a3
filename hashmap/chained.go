// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

type entry[K any, V any] struct {
	hash  uint64
	key   K
	value V
}

// Chained is a hash table resolving collisions by keeping a list of entries
// per bucket.
type Chained[K any, V any] struct {
	buckets [][]entry[K, V]
	length  int
	hash    func(K) uint64
	equal   func(K, K) bool
	cfg     Config

	// version is bumped on every structural change.
	version  uint64
	grows    uint64
	shrinks  uint64
	rehashes uint64
}

// NewChained returns an empty Chained table. A nil cfg selects the defaults.
func NewChained[K any, V any](hash func(K) uint64, equal func(a, b K) bool,
	cfg *Config) (*Chained[K, V], error) {
	c, err := cfg.normalize(true)
	if err != nil {
		return nil, err
	}
	return &Chained[K, V]{
		buckets: make([][]entry[K, V], c.InitialCapacity),
		hash:    hash,
		equal:   equal,
		cfg:     c,
	}, nil
}

// Len returns the length of m.
func (m *Chained[K, V]) Len() int {
	return m.length
}

// Cap returns the number of buckets of m.
func (m *Chained[K, V]) Cap() int {
	return len(m.buckets)
}

// LoadFactor returns the average number of entries per bucket.
func (m *Chained[K, V]) LoadFactor() float64 {
	return loadFactor(m.length, len(m.buckets))
}

func lookup[K any, V any](bucket []entry[K, V], hash uint64, k K, equal func(K, K) bool) int {
	for i := range bucket {
		if bucket[i].hash == hash && equal(bucket[i].key, k) {
			return i
		}
	}
	return -1
}

// Insert associates k with v in m.
func (m *Chained[K, V]) Insert(k K, v V) (V, bool, error) {
	hash := m.hash(k)
	b := indexFor(hash, len(m.buckets))
	if i := lookup(m.buckets[b], hash, k, m.equal); i >= 0 {
		ent := &m.buckets[b][i]
		prev := ent.value
		ent.value = v
		return prev, true, nil
	}

	var zero V
	if !withinLoad(m.length+1, len(m.buckets), m.cfg.MaxLoadFactor) {
		capacity, err := m.cfg.capacityFor(m.length+1, len(m.buckets)<<1)
		if err != nil {
			return zero, false, err
		}
		m.rehash(capacity)
		m.grows++
		b = indexFor(hash, len(m.buckets))
	}
	m.buckets[b] = append(m.buckets[b], entry[K, V]{hash: hash, key: k, value: v})
	m.length++
	m.version++
	return zero, false, nil
}

// Get gets the value associated with k
func (m *Chained[K, V]) Get(k K) (V, bool) {
	hash := m.hash(k)
	bucket := m.buckets[indexFor(hash, len(m.buckets))]
	if i := lookup(bucket, hash, k, m.equal); i >= 0 {
		return bucket[i].value, true
	}
	var v V
	return v, false
}

// Contains reports whether k is in m.
func (m *Chained[K, V]) Contains(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Delete removes k from m
func (m *Chained[K, V]) Delete(k K) (V, bool) {
	hash := m.hash(k)
	b := indexFor(hash, len(m.buckets))
	bucket := m.buckets[b]
	i := lookup(bucket, hash, k, m.equal)
	if i < 0 {
		var v V
		return v, false
	}
	prev := bucket[i].value
	// Chain order is irrelevant, fill the hole with the last entry.
	last := len(bucket) - 1
	bucket[i] = bucket[last]
	bucket[last] = entry[K, V]{}
	if last == 0 {
		m.buckets[b] = nil
	} else {
		m.buckets[b] = bucket[:last]
	}
	m.length--
	m.version++

	if capacity := m.cfg.shrinkTo(m.length, len(m.buckets)); capacity != 0 {
		m.rehash(capacity)
		m.shrinks++
	}
	return prev, true
}

// Clear removes all entries from m.
func (m *Chained[K, V]) Clear() {
	m.buckets = make([][]entry[K, V], len(m.buckets))
	m.length = 0
	m.version++
}

// rehash moves every entry into a new array of capacity buckets. The new
// array is only installed once it is fully populated.
func (m *Chained[K, V]) rehash(capacity int) {
	buckets := make([][]entry[K, V], capacity)
	for _, bucket := range m.buckets {
		for _, ent := range bucket {
			b := indexFor(ent.hash, capacity)
			buckets[b] = append(buckets[b], ent)
		}
	}
	m.cfg.Logger.Infof("hashmap: rehashed chained table from %d to %d buckets (%d entries)",
		len(m.buckets), capacity, m.length)
	m.buckets = buckets
	m.rehashes++
	m.version++
}

// Iter returns an iterator walking buckets in index order, and each bucket
// in storage order.
func (m *Chained[K, V]) Iter() *Iterator[K, V] {
	var b, i int
	return newIterator[K, V](func() uint64 { return m.version }, func() (K, V, bool) {
		for ; b < len(m.buckets); b, i = b+1, 0 {
			if i < len(m.buckets[b]) {
				ent := &m.buckets[b][i]
				i++
				return ent.key, ent.value, true
			}
		}
		var (
			k K
			v V
		)
		return k, v, false
	})
}

// Range calls f for every entry of m until f returns false.
func (m *Chained[K, V]) Range(f func(k K, v V) bool) error {
	return rangeIter(m.Iter(), f)
}

// Entries returns a copy of every entry of m.
func (m *Chained[K, V]) Entries() []Entry[K, V] {
	return entries(m.Iter(), m.length)
}

// Stats reports the shape of m. It walks every bucket.
func (m *Chained[K, V]) Stats() Stats {
	var longest int
	for _, bucket := range m.buckets {
		if len(bucket) > longest {
			longest = len(bucket)
		}
	}
	return Stats{
		Len:        m.length,
		Capacity:   len(m.buckets),
		LoadFactor: m.LoadFactor(),
		Grows:      m.grows,
		Shrinks:    m.shrinks,
		Rehashes:   m.rehashes,
		MaxProbe:   longest,
	}
}
