// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package test provides helpers for the package tests of this module.
package test

import (
	"github.com/kylelemons/godebug/pretty"
)

var diffConfig = &pretty.Config{
	Diffable:          true,
	IncludeUnexported: true,
}

// Diff returns the difference of two objects in a human readable format
// Empty string is returned when there is no difference
func Diff(a, b interface{}) string {
	return diffConfig.Compare(a, b)
}

// PrettyPrint returns a multi-line human readable rendering of v.
func PrettyPrint(v interface{}) string {
	return diffConfig.Sprint(v)
}
