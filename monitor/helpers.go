// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package monitor

import (
	"expvar"
	"fmt"
	"strings"
)

// VarsToString gives a string with the exported variables called names, or
// all of them if names is empty. The returned string is in a pretty format.
func VarsToString(names ...string) string {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	first := true
	expvar.Do(func(kv expvar.KeyValue) {
		if len(wanted) != 0 && !wanted[kv.Key] {
			return
		}
		if !first {
			sb.WriteString(",\n")
		}
		first = false
		fmt.Fprintf(&sb, "\t%q: %s", kv.Key, kv.Value)
	})
	sb.WriteString("\n}")
	return sb.String()
}
