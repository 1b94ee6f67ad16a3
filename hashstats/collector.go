// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashstats exports the shape of hash tables as Prometheus metrics.
package hashstats

import (
	"sync"

	"github.com/aristanetworks/hashtable/hashmap"
	"github.com/prometheus/client_golang/prometheus"
)

// Source is anything reporting hashmap.Stats. Stats is called from the
// Prometheus scrape goroutine, so tables shared with other goroutines should
// be wrapped with hashmap.NewLocked.
type Source interface {
	Stats() hashmap.Stats
}

// Collector is a prometheus.Collector reporting the stats of a set of named
// tables. Every metric carries a "table" label.
type Collector struct {
	// Protects access to tables
	m      sync.Mutex
	tables map[string]Source

	entries    *prometheus.Desc
	capacity   *prometheus.Desc
	tombstones *prometheus.Desc
	loadFactor *prometheus.Desc
	maxProbe   *prometheus.Desc
	grows      *prometheus.Desc
	shrinks    *prometheus.Desc
	rehashes   *prometheus.Desc
}

// NewCollector returns a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "table", name), help,
			[]string{"table"}, nil)
	}
	return &Collector{
		tables:     make(map[string]Source),
		entries:    desc("entries", "Number of live entries."),
		capacity:   desc("capacity", "Number of slots or buckets."),
		tombstones: desc("tombstones", "Number of slots holding a deleted entry."),
		loadFactor: desc("load_factor", "Fraction of slots in use, tombstones included."),
		maxProbe: desc("max_probe",
			"Longest chain, or largest distance of an entry from its ideal slot."),
		grows:    desc("grows_total", "Number of times the table grew."),
		shrinks:  desc("shrinks_total", "Number of times the table shrank."),
		rehashes: desc("rehashes_total", "Number of rehashes, including same-size ones."),
	}
}

// Add starts reporting s under name, replacing any source with that name.
func (c *Collector) Add(name string, s Source) {
	c.m.Lock()
	defer c.m.Unlock()
	c.tables[name] = s
}

// Remove stops reporting the table called name.
func (c *Collector) Remove(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.tables, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.tombstones
	ch <- c.loadFactor
	ch <- c.maxProbe
	ch <- c.grows
	ch <- c.shrinks
	ch <- c.rehashes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.m.Lock()
	defer c.m.Unlock()
	for name, src := range c.tables {
		s := src.Stats()
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		gauge(c.entries, float64(s.Len))
		gauge(c.capacity, float64(s.Capacity))
		gauge(c.tombstones, float64(s.Tombstones))
		gauge(c.loadFactor, s.LoadFactor)
		gauge(c.maxProbe, float64(s.MaxProbe))
		counter(c.grows, s.Grows)
		counter(c.shrinks, s.Shrinks)
		counter(c.rehashes, s.Rehashes)
	}
}
