// Copyright 2023 The Shac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package phf implements compile-time perfect hash tables.
//
// A table is computed ahead of time by Generate from a fixed set of keys and
// written out as Go source by package codegen. The resulting Map is a plain
// composite literal: it is never mutated, so it can be read concurrently
// without synchronization.
//
// Construction uses the CHD (compress, hash and displace) algorithm.
package phf

// Disp is the (d1, d2) displacement of one bucket.
type Disp [2]uint32

// Entry is a key and its associated value.
type Entry[V any] struct {
	Key   string
	Value V
}

// Map is an immutable perfect hash map from strings to V.
//
// The zero value is an empty map.
type Map[V any] struct {
	// Key is the seed the table was generated with.
	Key uint64
	// Disps has one displacement per bucket.
	Disps []Disp
	// Entries are stored in slot order.
	Entries []Entry[V]
}

// Get returns the value associated with key.
//
// The second return value is false if key is not in the map.
func (m *Map[V]) Get(key string) (V, bool) {
	if e := m.entry(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is in the map.
func (m *Map[V]) Contains(key string) bool {
	return m.entry(key) != nil
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.Entries)
}

// Keys returns the keys in slot order.
func (m *Map[V]) Keys() []string {
	out := make([]string, len(m.Entries))
	for i := range m.Entries {
		out[i] = m.Entries[i].Key
	}
	return out
}

// Range calls f for each entry in slot order until f returns false.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	for i := range m.Entries {
		if !f(m.Entries[i].Key, m.Entries[i].Value) {
			return
		}
	}
}

func (m *Map[V]) entry(key string) *Entry[V] {
	if len(m.Disps) == 0 || len(m.Entries) == 0 {
		return nil
	}
	h := Hash(key, m.Key)
	d := m.Disps[h.G%uint32(len(m.Disps))]
	e := &m.Entries[Displace(h.F1, h.F2, d[0], d[1])%uint32(len(m.Entries))]
	if e.Key != key {
		return nil
	}
	return e
}
