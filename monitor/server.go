// Copyright (C) 2015  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package monitor provides an embedded HTTP server to expose
// metrics for monitoring
package monitor

import (
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/aristanetworks/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents a monitoring server
type Server interface {
	// Handler returns the handler serving every monitoring endpoint.
	Handler() http.Handler
	// Run serves Handler until the listener fails.
	Run() error
}

// server contains information for the monitoring server
type server struct {
	// Server name e.g. host[:port]
	serverName string
	gatherer   prometheus.Gatherer
}

// NewMonitorServer creates a new server struct. Metrics are read from
// gatherer, or from prometheus.DefaultGatherer if it is nil.
func NewMonitorServer(serverName string, gatherer prometheus.Gatherer) Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &server{
		serverName: serverName,
		gatherer:   gatherer,
	}
}

func debugHandler(w http.ResponseWriter, r *http.Request) {
	indexTmpl := `<html>
	<head>
	<title>/debug</title>
	</head>
	<body>
	<p>/debug</p>
	<div><a href="/debug/vars">vars</a></div>
	<div><a href="/debug/pprof">pprof</a></div>
	<div><a href="/metrics">metrics</a></div>
	</body>
	</html>
	`
	fmt.Fprint(w, indexTmpl)
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug", debugHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/loglevel", setLogVerbosity)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run sets up the HTTP server and any handlers
func (s *server) Run() error {
	// monitoring server
	err := http.ListenAndServe(s.serverName, s.Handler())
	if err != nil {
		glog.Errorf("Could not start monitor server: %s", err)
	}
	return err
}
