// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityOverflow is returned by Insert when growing the table would
	// need more slots than the configured maximum capacity.
	ErrCapacityOverflow = errors.New("hashmap: capacity overflow")
	// ErrTableFull is returned when an open addressing probe sequence visits
	// every slot without finding room for a new entry.
	ErrTableFull = errors.New("hashmap: table full")
	// ErrConcurrentModification is reported by an Iterator whose table was
	// structurally modified after the iterator was created.
	ErrConcurrentModification = errors.New("hashmap: table modified during iteration")
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("hashmap: invalid config")
)

// CapacityError describes a resize that could not be satisfied.
type CapacityError struct {
	// Requested is the number of entries the table needed room for.
	Requested int
	// Max is the largest capacity the table may grow to.
	Max int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("hashmap: capacity overflow: %d entries do not fit in %d slots",
		e.Requested, e.Max)
}

// Is makes errors.Is(err, ErrCapacityOverflow) hold for a *CapacityError.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityOverflow
}

// ConfigError reports a Config field with an unacceptable value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("hashmap: invalid config: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for a *ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
