// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/aristanetworks/hashtable/logger"
)

const (
	// DefaultCapacity is the number of slots (or buckets) of a table
	// created without an explicit initial capacity.
	DefaultCapacity = 16
	// MaxCapacity is the largest capacity a table may ever have.
	MaxCapacity = 1 << (bits.UintSize - 2)

	defaultChainedLoad   = 0.75
	defaultRobinHoodLoad = 0.875
	defaultProbingLoad   = 0.7
)

// Probing selects how an Open table resolves collisions.
type Probing int

const (
	// RobinHood probes linearly and lets an incoming entry take the slot of
	// any resident entry that sits closer to its ideal slot.
	RobinHood Probing = iota
	// Linear probes base, base+1, base+2, ...
	Linear
	// Quadratic probes base + i*(i+1)/2, which visits every slot of a
	// power-of-two table.
	Quadratic
	// DoubleHash probes base + i*step, with step derived from the high bits
	// of the key's hash.
	DoubleHash
)

var probingNames = [...]string{
	RobinHood:  "robinhood",
	Linear:     "linear",
	Quadratic:  "quadratic",
	DoubleHash: "double",
}

func (p Probing) String() string {
	if p < 0 || int(p) >= len(probingNames) {
		return fmt.Sprintf("Probing(%d)", int(p))
	}
	return probingNames[p]
}

// ParseProbing returns the Probing named s, as printed by Probing.String.
func ParseProbing(s string) (Probing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range probingNames {
		if s == name {
			return Probing(p), nil
		}
	}
	return 0, &ConfigError{Field: "Probing", Reason: fmt.Sprintf("unknown strategy %q", s)}
}

// Config controls the sizing and resize policy of a table. The zero value,
// or a nil *Config, selects the defaults.
type Config struct {
	// InitialCapacity is the number of slots the table starts with. It is
	// rounded up to a power of two. It is also the floor below which
	// shrinking never goes.
	InitialCapacity int
	// MaxLoadFactor triggers a grow when an insert would push the load
	// factor above it. Open tables require a value strictly below 1.
	MaxLoadFactor float64
	// MinLoadFactor, when positive, halves the table after a delete
	// leaves the load factor below it. It must be below MaxLoadFactor/2.
	MinLoadFactor float64
	// Probing is the collision strategy of Open tables. Chained tables
	// ignore it.
	Probing Probing
	// MaxCapacity bounds growth. Zero means MaxCapacity. It is rounded down
	// to a power of two.
	MaxCapacity int
	// Logger receives a line per resize. Defaults to logger.Discard.
	Logger logger.Logger
}

// normalize returns a validated copy of c with defaults filled in.
func (c *Config) normalize(chained bool) (Config, error) {
	var cfg Config
	if c != nil {
		cfg = *c
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard
	}
	if cfg.Probing < RobinHood || cfg.Probing > DoubleHash {
		return cfg, &ConfigError{Field: "Probing", Reason: fmt.Sprintf("unknown strategy %d",
			int(cfg.Probing))}
	}
	if cfg.MaxLoadFactor == 0 {
		switch {
		case chained:
			cfg.MaxLoadFactor = defaultChainedLoad
		case cfg.Probing == RobinHood:
			cfg.MaxLoadFactor = defaultRobinHoodLoad
		default:
			cfg.MaxLoadFactor = defaultProbingLoad
		}
	}
	if cfg.MaxLoadFactor < 0 || cfg.MaxLoadFactor != cfg.MaxLoadFactor {
		return cfg, &ConfigError{Field: "MaxLoadFactor", Reason: "must be positive"}
	}
	if !chained && cfg.MaxLoadFactor >= 1 {
		return cfg, &ConfigError{Field: "MaxLoadFactor",
			Reason: "must be below 1 for open addressing"}
	}
	if cfg.MinLoadFactor < 0 || cfg.MinLoadFactor >= cfg.MaxLoadFactor/2 ||
		cfg.MinLoadFactor != cfg.MinLoadFactor {
		return cfg, &ConfigError{Field: "MinLoadFactor",
			Reason: fmt.Sprintf("must be in [0, %g)", cfg.MaxLoadFactor/2)}
	}

	switch {
	case cfg.MaxCapacity < 0:
		return cfg, &ConfigError{Field: "MaxCapacity", Reason: "must not be negative"}
	case cfg.MaxCapacity == 0 || cfg.MaxCapacity > MaxCapacity:
		cfg.MaxCapacity = MaxCapacity
	default:
		cfg.MaxCapacity = 1 << (bits.Len(uint(cfg.MaxCapacity)) - 1)
	}

	switch {
	case cfg.InitialCapacity < 0:
		return cfg, &ConfigError{Field: "InitialCapacity", Reason: "must not be negative"}
	case cfg.InitialCapacity == 0:
		cfg.InitialCapacity = DefaultCapacity
	}
	if cfg.InitialCapacity > cfg.MaxCapacity {
		return cfg, &ConfigError{Field: "InitialCapacity",
			Reason: fmt.Sprintf("exceeds MaxCapacity %d", cfg.MaxCapacity)}
	}
	cfg.InitialCapacity = roundUp(cfg.InitialCapacity)
	if cfg.InitialCapacity > cfg.MaxCapacity {
		cfg.InitialCapacity = cfg.MaxCapacity
	}
	return cfg, nil
}

// Validate reports whether c is acceptable for a table. Open addressing
// rules apply unless chained is set.
func (c *Config) Validate(chained bool) error {
	_, err := c.normalize(chained)
	return err
}

// roundUp returns the smallest power of two >= n, for n >= 1.
func roundUp(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func withinLoad(n, capacity int, maxLoad float64) bool {
	return float64(n) <= maxLoad*float64(capacity)
}

// capacityFor returns the smallest power-of-two capacity, no smaller than
// minimum, at which n entries stay within the max load factor.
func (c *Config) capacityFor(n, minimum int) (int, error) {
	if minimum > c.MaxCapacity || minimum <= 0 {
		return 0, &CapacityError{Requested: n, Max: c.MaxCapacity}
	}
	capacity := minimum
	for !withinLoad(n, capacity, c.MaxLoadFactor) {
		if capacity >= c.MaxCapacity {
			return 0, &CapacityError{Requested: n, Max: c.MaxCapacity}
		}
		capacity <<= 1
	}
	return capacity, nil
}

// shrinkTo returns the capacity a table of the given size should shrink to,
// or 0 if it should keep its current capacity.
func (c *Config) shrinkTo(length, capacity int) int {
	if c.MinLoadFactor == 0 || capacity <= c.InitialCapacity {
		return 0
	}
	if float64(length) >= c.MinLoadFactor*float64(capacity) {
		return 0
	}
	return capacity >> 1
}
