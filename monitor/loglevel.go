// Copyright (c) 2022 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package monitor

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aristanetworks/glog"
)

// maxVerbosity bounds the glog verbosity the loglevel endpoint accepts.
const maxVerbosity = 10

func parseGlogV(v string) (glog.Level, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int: %q", v)
	}
	if n < 0 || n > maxVerbosity {
		return 0, fmt.Errorf("verbosity %d out of range [0, %d]", n, maxVerbosity)
	}
	return glog.Level(n), nil
}

// currentGlogV returns the highest level at which glog is enabled.
func currentGlogV() glog.Level {
	var l glog.Level
	for l < maxVerbosity && glog.V(l+1) {
		l++
	}
	return l
}

func logErr(w http.ResponseWriter, err string, code int) {
	err = fmt.Sprintf("loglevel error: %v (code %v)", err, code)
	glog.Error(err)
	http.Error(w, err, code)
}

// setLogVerbosity serves /debug/loglevel. GET reports the glog verbosity,
// POST sets it from the "glog" form value. Resize logs of tables using a
// glog logger appear once the verbosity reaches the logger's level.
func setLogVerbosity(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		fmt.Fprintf(w, "glog verbosity: %d\n", currentGlogV())
		return
	case http.MethodPost:
	default:
		logErr(w, "only supports GET and POST methods", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		logErr(w, "could not parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	gv := r.Form.Get("glog")
	if gv == "" {
		logErr(w, "bad request: no change", http.StatusBadRequest)
		return
	}
	level, err := parseGlogV(gv)
	if err != nil {
		logErr(w, "could not set glog: "+err.Error(), http.StatusBadRequest)
		return
	}
	prev := currentGlogV()
	glog.SetVGlobal(strconv.Itoa(int(level)))
	glog.Infof("monitor: set glog verbosity from %d to %d", prev, level)
	fmt.Fprint(w, "OK\n")
}
