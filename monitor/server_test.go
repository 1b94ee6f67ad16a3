// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package monitor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aristanetworks/glog"
	"github.com/aristanetworks/hashtable/hashmap"
	"github.com/aristanetworks/hashtable/hashstats"
	"github.com/prometheus/client_golang/prometheus"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := hashstats.NewCollector("monitortest")
	m := hashmap.New[string, int](0)
	m.Insert("alice", 1)
	c.Add("people", m)
	reg.MustRegister(c)

	srv := httptest.NewServer(NewMonitorServer("", reg).Handler())
	defer srv.Close()

	code, body := get(t, srv, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("GET /metrics: %d", code)
	}
	if !strings.Contains(body, `monitortest_table_entries{table="people"} 1`) {
		t.Errorf("metrics do not report the table:\n%s", body)
	}

	code, body = get(t, srv, "/debug")
	if code != http.StatusOK || !strings.Contains(body, "/metrics") {
		t.Errorf("GET /debug: %d %q", code, body)
	}
	if code, _ := get(t, srv, "/debug/vars"); code != http.StatusOK {
		t.Errorf("GET /debug/vars: %d", code)
	}
}

func TestLogLevelEndpoint(t *testing.T) {
	defer glog.SetVGlobal("0")
	srv := httptest.NewServer(NewMonitorServer("", prometheus.NewRegistry()).Handler())
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/debug/loglevel", url.Values{"glog": {"3"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST glog=3: %d", resp.StatusCode)
	}
	if _, body := get(t, srv, "/debug/loglevel"); !strings.Contains(body, "verbosity: 3") {
		t.Errorf("GET /debug/loglevel: %q", body)
	}

	for _, form := range []url.Values{{"glog": {"loud"}}, {"glog": {"-1"}}, {"glog": {"11"}},
		{}} {
		resp, err := http.PostForm(srv.URL+"/debug/loglevel", form)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST %v: expected 400, got %d", form, resp.StatusCode)
		}
	}
}
