// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"math/bits"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Hashable represents the key for an entry in a table that cannot natively be hashed
type Hashable interface {
	Hash() uint64
	Equal(other interface{}) bool
}

// indexFor maps hash to a slot in [0, capacity). capacity is a power of two.
func indexFor(hash uint64, capacity int) int {
	return int(hash & uint64(capacity-1))
}

// secondHash is the double hashing step. It is odd so that it is coprime
// with any power-of-two capacity.
func secondHash(hash uint64) uint64 {
	h := hash >> 32
	h ^= h >> 15
	h *= 0x2c1b3c6d
	return h | 1
}

func mix(seed maphash.Seed, v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return maphash.Bytes(seed, buf[:])
}

// String returns a hash function for string keys.
func String(seed maphash.Seed) func(string) uint64 {
	return func(s string) uint64 {
		return maphash.String(seed, s)
	}
}

// Bytes returns a hash function for []byte keys.
func Bytes(seed maphash.Seed) func([]byte) uint64 {
	return func(b []byte) uint64 {
		return maphash.Bytes(seed, b)
	}
}

// Int returns a hash function for integer keys.
func Int[T constraints.Integer](seed maphash.Seed) func(T) uint64 {
	return func(v T) uint64 {
		return mix(seed, uint64(v))
	}
}

// HashableFuncs returns the hash and equal functions for a Hashable key
// type. The key's own Hash is mixed so that it covers all 64 bits.
func HashableFuncs[K Hashable]() (func(K) uint64, func(a, b K) bool) {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
			return mix(seed, k.Hash())
		}, func(a, b K) bool {
			return a.Equal(b)
		}
}

// Comparable returns hash and equal functions for any comparable key type,
// using a fresh random seed. The hash agrees with ==: pointers, channels and
// unsafe pointers hash by address, structs and arrays field by field, and
// floats treat +0 and -0 alike. Interface values hash their dynamic value.
// Keys needing their own notion of equality should use HashableFuncs.
func Comparable[K comparable]() (func(K) uint64, func(a, b K) bool) {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
			return hashAny(seed, k)
		}, func(a, b K) bool {
			return a == b
		}
}

func hashAny(seed maphash.Seed, k interface{}) uint64 {
	switch v := k.(type) {
	case string:
		return maphash.String(seed, v)
	case int:
		return mix(seed, uint64(v))
	case int64:
		return mix(seed, uint64(v))
	case uint64:
		return mix(seed, v)
	case float64:
		return hashFloat(seed, v)
	}
	return hashValue(seed, reflect.ValueOf(k))
}

func hashValue(seed maphash.Seed, v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Invalid:
		// nil interface
		return mix(seed, 0)
	case reflect.String:
		return maphash.String(seed, v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return mix(seed, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr:
		return mix(seed, v.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(seed, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return combine(hashFloat(seed, real(c)), hashFloat(seed, imag(c)))
	case reflect.Bool:
		if v.Bool() {
			return mix(seed, 1)
		}
		return mix(seed, 0)
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		return mix(seed, uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return mix(seed, 0)
		}
		return hashValue(seed, v.Elem())
	case reflect.Struct:
		h := mix(seed, uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			h = combine(h, hashValue(seed, v.Field(i)))
		}
		return h
	case reflect.Array:
		h := mix(seed, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			h = combine(h, hashValue(seed, v.Index(i)))
		}
		return h
	}
	// func, map and slice values are not comparable.
	panic("hashmap: cannot hash " + v.Type().String())
}

// combine folds h2 into the running hash h. It is order sensitive.
func combine(h, h2 uint64) uint64 {
	return bits.RotateLeft64(h, 31)*0x9e3779b97f4a7c15 ^ h2
}

func hashFloat(seed maphash.Seed, f float64) uint64 {
	if f == 0 {
		// +0 and -0 compare equal
		f = 0
	}
	return mix(seed, math.Float64bits(f))
}
