// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"hash/maphash"

	"github.com/aristanetworks/hashtable/hashmap"
	"github.com/aristanetworks/hashtable/logger"
	"gopkg.in/yaml.v2"
)

// Config is the representation of hashbench's YAML config file.
type Config struct {
	// Seed makes key sequences reproducible. Each table derives its own
	// stream from it.
	Seed uint64 `yaml:"seed"`

	// Tables to build and exercise, concurrently.
	Tables []*TableDef `yaml:"tables"`
}

// TableDef describes one table and the workload run against it.
type TableDef struct {
	// Name labels the table in logs and metrics.
	Name string `yaml:"name"`

	// Kind is "chained" or "open".
	Kind string `yaml:"kind"`

	// Probing is the open addressing strategy: robinhood, linear,
	// quadratic or double.
	Probing string `yaml:"probing,omitempty"`

	InitialCapacity int     `yaml:"initial-capacity,omitempty"`
	MaxLoadFactor   float64 `yaml:"max-load-factor,omitempty"`
	MinLoadFactor   float64 `yaml:"min-load-factor,omitempty"`
	MaxCapacity     int     `yaml:"max-capacity,omitempty"`

	Workload Workload `yaml:"workload"`
}

// Workload is a random mix of operations over a fixed key space.
type Workload struct {
	// Keys is the number of distinct keys drawn from.
	Keys uint64 `yaml:"keys"`
	// Operations is the number of operations to run.
	Operations int `yaml:"operations"`
	// Inserts and Deletes are the fractions of operations of each kind,
	// the remainder are lookups.
	Inserts float64 `yaml:"inserts"`
	Deletes float64 `yaml:"deletes"`
}

const (
	kindChained = "chained"
	kindOpen    = "open"
)

func parseConfig(cfg []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(cfg, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(config.Tables) == 0 {
		return nil, fmt.Errorf("config defines no tables")
	}
	seen := make(map[string]bool, len(config.Tables))
	for i, def := range config.Tables {
		if def.Name == "" {
			def.Name = fmt.Sprintf("table%d", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("table %q defined twice", def.Name)
		}
		seen[def.Name] = true
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("table %q: %w", def.Name, err)
		}
	}
	return config, nil
}

func (d *TableDef) validate() error {
	if _, err := d.hashmapConfig(); err != nil {
		return err
	}
	w := d.Workload
	switch {
	case w.Keys == 0:
		return fmt.Errorf("workload needs a positive number of keys")
	case w.Operations < 0:
		return fmt.Errorf("negative number of operations")
	case w.Inserts < 0 || w.Deletes < 0 || w.Inserts+w.Deletes > 1:
		return fmt.Errorf("insert and delete fractions must be positive and sum to at most 1")
	}
	return nil
}

// hashmapConfig translates d into a validated hashmap.Config.
func (d *TableDef) hashmapConfig() (*hashmap.Config, error) {
	cfg := &hashmap.Config{
		InitialCapacity: d.InitialCapacity,
		MaxLoadFactor:   d.MaxLoadFactor,
		MinLoadFactor:   d.MinLoadFactor,
		MaxCapacity:     d.MaxCapacity,
	}
	switch d.Kind {
	case kindChained:
		if d.Probing != "" {
			return nil, fmt.Errorf("probing %q set on a chained table", d.Probing)
		}
	case kindOpen, "":
		d.Kind = kindOpen
		if d.Probing != "" {
			p, err := hashmap.ParseProbing(d.Probing)
			if err != nil {
				return nil, err
			}
			cfg.Probing = p
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}
	if err := cfg.Validate(d.Kind == kindChained); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newTable builds the table described by d. Resizes are logged to log.
func (d *TableDef) newTable(seed maphash.Seed,
	log logger.Logger) (hashmap.Table[uint64, uint64], error) {
	cfg, err := d.hashmapConfig()
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger.Prefixed(log, d.Name+": ")
	hash := hashmap.Int[uint64](seed)
	equal := func(a, b uint64) bool { return a == b }
	if d.Kind == kindChained {
		t, err := hashmap.NewChained[uint64, uint64](hash, equal, cfg)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	t, err := hashmap.NewOpen[uint64, uint64](hash, equal, cfg)
	if err != nil {
		return nil, err
	}
	return t, nil
}
