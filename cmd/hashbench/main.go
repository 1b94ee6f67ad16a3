// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The hashbench command runs randomized workloads against hash tables
// described in a YAML file, checking every lookup against a builtin map, and
// exposes the shape of the tables as Prometheus metrics while it runs.
package main

import (
	"context"
	"expvar"
	"flag"
	"hash/maphash"
	"os"
	"runtime"
	"time"

	"github.com/aristanetworks/glog"
	hglog "github.com/aristanetworks/hashtable/glog"
	"github.com/aristanetworks/hashtable/hashmap"
	"github.com/aristanetworks/hashtable/hashstats"
	"github.com/aristanetworks/hashtable/logger"
	"github.com/aristanetworks/hashtable/monitor"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var results = expvar.NewMap("hashbench")

func main() {
	configFlag := flag.String("config", "", "YAML file describing the tables and workloads")
	listenaddr := flag.String("listenaddr", "",
		"Address on which to expose metrics and debug endpoints, disabled if empty")
	seed := flag.Uint64("seed", 0, "Overrides the seed of the config file if non-zero")
	linger := flag.Duration("linger", 0,
		"How long to keep serving metrics after the workloads complete")
	resizeV := flag.Int("resize-verbosity", 1, "glog verbosity at which resizes are logged")
	stdlog := flag.Bool("stdlog", false,
		"Log resizes to the standard logger instead of glog")
	parallelism := flag.Int("parallelism", runtime.GOMAXPROCS(0),
		"Maximum number of workloads running at once")
	flag.Parse()

	if *configFlag == "" {
		glog.Fatal("You need specify a config file using -config flag")
	}
	cfg, err := os.ReadFile(*configFlag)
	if err != nil {
		glog.Fatalf("Can't read config file %q: %v", *configFlag, err)
	}
	config, err := parseConfig(cfg)
	if err != nil {
		glog.Fatal(err)
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	reg := prometheus.NewRegistry()
	coll := hashstats.NewCollector("hashbench")
	reg.MustRegister(coll)
	if *listenaddr != "" {
		go monitor.NewMonitorServer(*listenaddr, reg).Run()
	}

	if *parallelism < 1 {
		glog.Fatalf("Invalid -parallelism %d", *parallelism)
	}
	var resizeLog logger.Logger = hglog.New(*resizeV)
	if *stdlog {
		resizeLog = logger.Std
	}
	err = runAll(context.Background(), config, coll, resizeLog, *parallelism)
	if err != nil {
		glog.Fatal(err)
	}
	if glog.V(2) {
		glog.Info(monitor.VarsToString("hashbench"))
	}
	if *listenaddr != "" && *linger > 0 {
		glog.Infof("Serving metrics on %s for %s", *listenaddr, *linger)
		time.Sleep(*linger)
	}
}

// runAll builds every table of config and runs its workload in its own
// goroutine, at most parallelism at a time. Tables are registered with coll so
// they can be scraped while their workloads run. The first failure cancels
// the other workloads.
func runAll(ctx context.Context, config *Config, coll *hashstats.Collector,
	log logger.Logger, parallelism int) error {
	seed := maphash.MakeSeed()
	tables := make([]*hashmap.Locked[uint64, uint64], len(config.Tables))
	for i, def := range config.Tables {
		t, err := def.newTable(seed, log)
		if err != nil {
			return err
		}
		tables[i] = hashmap.NewLocked(t)
		coll.Add(def.Name, tables[i])
	}
	sem := semaphore.NewWeighted(int64(parallelism))
	g, gCtx := errgroup.WithContext(ctx)
	for i, def := range config.Tables {
		i, def := i, def
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			res, err := run(gCtx, def.Workload, tables[i], config.Seed+uint64(i))
			if err != nil {
				glog.Errorf("Workload on table %q failed: %s", def.Name, err)
				return err
			}
			glog.Infof("Table %q (%s): %s", def.Name, describe(def), res)
			v := new(expvar.String)
			v.Set(res.String())
			results.Set(def.Name, v)
			return nil
		})
	}
	return g.Wait()
}

func describe(def *TableDef) string {
	if def.Kind == kindChained || def.Probing == "" {
		return def.Kind
	}
	return def.Kind + "/" + def.Probing
}
