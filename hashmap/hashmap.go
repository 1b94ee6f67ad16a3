// Copyright (c) 2020 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

type slot[K any, V any] struct {
	hash      uint64
	key       K
	value     V
	occupied  bool
	tombstone bool
}

// Open is a hash table storing its entries directly in a slot array and
// resolving collisions by probing, as selected by Config.Probing.
//
// Deleted entries leave a tombstone behind so that probe sequences running
// through their slot are not cut short. Tombstones count toward the load
// factor and are dropped whenever the table is rehashed.
type Open[K any, V any] struct {
	slots      []slot[K, V]
	length     int
	tombstones int
	hash       func(K) uint64
	equal      func(K, K) bool
	cfg        Config

	version  uint64
	grows    uint64
	shrinks  uint64
	rehashes uint64
}

// NewOpen returns an empty Open table. A nil cfg selects the defaults, with
// Robin Hood probing.
func NewOpen[K any, V any](hash func(K) uint64, equal func(a, b K) bool,
	cfg *Config) (*Open[K, V], error) {
	c, err := cfg.normalize(false)
	if err != nil {
		return nil, err
	}
	return &Open[K, V]{
		slots: make([]slot[K, V], c.InitialCapacity),
		hash:  hash,
		equal: equal,
		cfg:   c,
	}, nil
}

// New returns a Robin Hood table for comparable keys with room for size
// slots. It panics if size exceeds MaxCapacity.
func New[K comparable, V any](size int) *Open[K, V] {
	if size < 0 {
		size = 0
	}
	hash, equal := Comparable[K]()
	m, err := NewOpen[K, V](hash, equal, &Config{InitialCapacity: size})
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the length of m.
func (m *Open[K, V]) Len() int {
	return m.length
}

// Cap returns the number of slots of m.
func (m *Open[K, V]) Cap() int {
	return len(m.slots)
}

// Probing returns the collision strategy of m.
func (m *Open[K, V]) Probing() Probing {
	return m.cfg.Probing
}

// LoadFactor returns the fraction of slots holding an entry or a tombstone.
func (m *Open[K, V]) LoadFactor() float64 {
	return loadFactor(m.length+m.tombstones, len(m.slots))
}

func (m *Open[K, V]) mask() int {
	return len(m.slots) - 1
}

// distance returns how far the slot at position is from hash's ideal slot.
func (m *Open[K, V]) distance(position int, hash uint64) int {
	return (position - indexFor(hash, len(m.slots))) & m.mask()
}

// probe returns the slot visited by the given attempt of a non Robin Hood
// probe sequence.
func (m *Open[K, V]) probe(base int, step uint64, attempt int) int {
	switch m.cfg.Probing {
	case Quadratic:
		return int((uint64(base) + uint64(attempt)*uint64(attempt+1)/2) & uint64(m.mask()))
	case DoubleHash:
		return int((uint64(base) + uint64(attempt)*step) & uint64(m.mask()))
	default:
		return (base + attempt) & m.mask()
	}
}

// find returns the position of k, or -1.
func (m *Open[K, V]) find(hash uint64, k K) int {
	if m.cfg.Probing == RobinHood {
		return m.findRobinHood(hash, k)
	}
	base, step := indexFor(hash, len(m.slots)), secondHash(hash)
	for attempt := 0; attempt < len(m.slots); attempt++ {
		position := m.probe(base, step, attempt)
		ent := &m.slots[position]
		if !ent.occupied {
			return -1
		}
		if !ent.tombstone && ent.hash == hash && m.equal(ent.key, k) {
			return position
		}
	}
	return -1
}

func (m *Open[K, V]) findRobinHood(hash uint64, k K) int {
	position := indexFor(hash, len(m.slots))
	for distance := 0; distance < len(m.slots); distance++ {
		ent := &m.slots[position]
		if !ent.occupied {
			return -1
		}
		if distance > m.distance(position, ent.hash) {
			// Our distance has exceeded this entry's distance, we
			// would have found our key by now if it was present.
			return -1
		}
		if !ent.tombstone && ent.hash == hash && m.equal(ent.key, k) {
			return position
		}
		position = (position + 1) & m.mask()
	}
	return -1
}

// Get gets the value associated with k
func (m *Open[K, V]) Get(k K) (V, bool) {
	if position := m.find(m.hash(k), k); position >= 0 {
		return m.slots[position].value, true
	}
	var v V
	return v, false
}

// Contains reports whether k is in m.
func (m *Open[K, V]) Contains(k K) bool {
	return m.find(m.hash(k), k) >= 0
}

// Insert associates k with v in m.
func (m *Open[K, V]) Insert(k K, v V) (V, bool, error) {
	hash := m.hash(k)
	if position := m.find(hash, k); position >= 0 {
		ent := &m.slots[position]
		prev := ent.value
		ent.value = v
		return prev, true, nil
	}

	var zero V
	if err := m.reserve(); err != nil {
		return zero, false, err
	}
	if err := m.place(hash, k, v); err != nil {
		return zero, false, err
	}
	m.version++
	return zero, false, nil
}

// reserve makes room for one more entry.
func (m *Open[K, V]) reserve() error {
	capacity := len(m.slots)
	if withinLoad(m.length+m.tombstones+1, capacity, m.cfg.MaxLoadFactor) {
		return nil
	}
	// Mostly tombstones, or no room left to grow: try rehashing at the
	// same size first.
	minimum := capacity
	if m.tombstones < capacity/4 && capacity < m.cfg.MaxCapacity {
		minimum = capacity << 1
	}
	newCapacity, err := m.cfg.capacityFor(m.length+1, minimum)
	if err != nil {
		return err
	}
	if newCapacity > capacity {
		m.grows++
	}
	m.rehash(newCapacity)
	return nil
}

// place stores an entry for k, which must not be present in m.
func (m *Open[K, V]) place(hash uint64, k K, v V) error {
	if m.cfg.Probing == RobinHood {
		return m.placeRobinHood(hash, k, v)
	}
	base, step := indexFor(hash, len(m.slots)), secondHash(hash)
	for attempt := 0; attempt < len(m.slots); attempt++ {
		ent := &m.slots[m.probe(base, step, attempt)]
		if ent.occupied && !ent.tombstone {
			continue
		}
		if ent.tombstone {
			m.tombstones--
		}
		*ent = slot[K, V]{hash: hash, key: k, value: v, occupied: true}
		m.length++
		return nil
	}
	return ErrTableFull
}

func (m *Open[K, V]) placeRobinHood(hash uint64, k K, v V) error {
	position := indexFor(hash, len(m.slots))
	var distance int
	for n := 0; n < len(m.slots); n++ {
		existing := &m.slots[position]
		if !existing.occupied {
			*existing = slot[K, V]{hash: hash, key: k, value: v, occupied: true}
			m.length++
			return nil
		}

		existingDistance := m.distance(position, existing.hash)
		if distance > existingDistance ||
			(distance == existingDistance && existing.tombstone) {
			if existing.tombstone {
				*existing = slot[K, V]{hash: hash, key: k, value: v, occupied: true}
				m.tombstones--
				m.length++
				return nil
			}
			// k is further from its desired position than existing.k,
			// steal its spot and find a new place for existing.
			hash, existing.hash = existing.hash, hash
			k, existing.key = existing.key, k
			v, existing.value = existing.value, v
			distance = existingDistance
		}

		distance++
		position = (position + 1) & m.mask()
	}
	return ErrTableFull
}

// Delete removes k from m
func (m *Open[K, V]) Delete(k K) (V, bool) {
	position := m.find(m.hash(k), k)
	if position < 0 {
		var v V
		return v, false
	}
	// Set the entry to a tombstone. We keep the entry's hash set, so
	// that this entry's distance can still be calculated.
	var (
		nilK K
		nilV V
	)
	ent := &m.slots[position]
	prev := ent.value
	ent.key = nilK
	ent.value = nilV
	ent.tombstone = true
	m.length--
	m.tombstones++
	m.version++

	if capacity := m.cfg.shrinkTo(m.length, len(m.slots)); capacity != 0 {
		m.rehash(capacity)
		m.shrinks++
	}
	return prev, true
}

// Clear removes all entries and tombstones from m.
func (m *Open[K, V]) Clear() {
	m.slots = make([]slot[K, V], len(m.slots))
	m.length = 0
	m.tombstones = 0
	m.version++
}

// rehash reinserts every live entry into a new array of capacity slots,
// dropping tombstones. m is only updated once the new array is complete.
func (m *Open[K, V]) rehash(capacity int) {
	fresh := Open[K, V]{
		slots: make([]slot[K, V], capacity),
		equal: m.equal,
		cfg:   m.cfg,
	}
	for _, ent := range m.slots {
		if !ent.occupied || ent.tombstone {
			continue
		}
		if err := fresh.place(ent.hash, ent.key, ent.value); err != nil {
			panic("hashmap: rehash into " + m.cfg.Probing.String() +
				" table did not fit: " + err.Error())
		}
	}
	m.cfg.Logger.Infof("hashmap: rehashed %s table from %d to %d slots "+
		"(%d entries, %d tombstones dropped)",
		m.cfg.Probing, len(m.slots), capacity, fresh.length, m.tombstones)
	m.slots = fresh.slots
	m.length = fresh.length
	m.tombstones = 0
	m.rehashes++
	m.version++
}

// Iter returns an iterator walking the slots in index order.
func (m *Open[K, V]) Iter() *Iterator[K, V] {
	var position int
	return newIterator[K, V](func() uint64 { return m.version }, func() (K, V, bool) {
		for position < len(m.slots) {
			ent := &m.slots[position]
			position++
			if ent.occupied && !ent.tombstone {
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
func (m *Open[K, V]) Range(f func(k K, v V) bool) error {
	return rangeIter(m.Iter(), f)
}

// Entries returns a copy of every entry of m.
func (m *Open[K, V]) Entries() []Entry[K, V] {
	return entries(m.Iter(), m.length)
}

// Stats reports the shape of m. It walks every slot.
//
// For probing strategies other than Robin Hood, MaxProbe is the largest
// number of attempts needed to reach a live entry.
func (m *Open[K, V]) Stats() Stats {
	var longest int
	for position, ent := range m.slots {
		if !ent.occupied || ent.tombstone {
			continue
		}
		if d := m.probeLength(position, ent.hash); d > longest {
			longest = d
		}
	}
	return Stats{
		Len:        m.length,
		Capacity:   len(m.slots),
		Tombstones: m.tombstones,
		LoadFactor: m.LoadFactor(),
		Grows:      m.grows,
		Shrinks:    m.shrinks,
		Rehashes:   m.rehashes,
		MaxProbe:   longest,
	}
}

func (m *Open[K, V]) probeLength(position int, hash uint64) int {
	switch m.cfg.Probing {
	case RobinHood, Linear:
		return m.distance(position, hash)
	}
	base, step := indexFor(hash, len(m.slots)), secondHash(hash)
	for attempt := 0; attempt < len(m.slots); attempt++ {
		if m.probe(base, step, attempt) == position {
			return attempt
		}
	}
	return len(m.slots)
}
