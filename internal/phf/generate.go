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

package phf

import (
	"errors"
	"fmt"
	"sort"

	"go.chromium.org/luci/common/data/stringset"
)

const (
	// lambda is the average number of keys per bucket.
	lambda = 5
	// initialSeed starts the seed sequence so the output is reproducible.
	initialSeed = 1234567890
	// maxAttempts bounds the number of seeds tried.
	maxAttempts = 1 << 16
)

var (
	// ErrDuplicateKey is returned when the same key is provided twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNoSolution is returned when no seed yields a perfect hash.
	ErrNoSolution = errors.New("no perfect hash found")
)

// State is the result of Generate.
type State struct {
	// Key is the hash seed.
	Key uint64
	// Disps has one displacement per bucket.
	Disps []Disp
	// Map maps each slot to the index of its key in the slice passed to
	// Generate.
	Map []int
}

// Generate computes a perfect hash for keys.
//
// The result only depends on keys and their order.
func Generate(keys []string) (*State, error) {
	seen := stringset.New(len(keys))
	for _, k := range keys {
		if !seen.Add(k) {
			return nil, fmt.Errorf("%w %q", ErrDuplicateKey, k)
		}
	}
	s := seeds{state: initialSeed}
	for i := 0; i < maxAttempts; i++ {
		if st := tryGenerate(keys, s.next()); st != nil {
			return st, nil
		}
	}
	return nil, ErrNoSolution
}

type bucket struct {
	idx  int
	keys []int
}

func tryGenerate(keys []string, seed uint64) *State {
	hashes := make([]Hashes, len(keys))
	for i, k := range keys {
		hashes[i] = Hash(k, seed)
	}
	bucketsLen := (len(keys) + lambda - 1) / lambda
	if bucketsLen == 0 {
		return &State{Key: seed}
	}
	buckets := make([]bucket, bucketsLen)
	for i := range buckets {
		buckets[i].idx = i
	}
	for i, h := range hashes {
		b := &buckets[h.G%uint32(bucketsLen)]
		b.keys = append(b.keys, i)
	}
	// Place the largest buckets first, they are the hardest to fit.
	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i].keys) > len(buckets[j].keys)
	})

	tableLen := uint32(len(keys))
	slots := make([]int, tableLen)
	for i := range slots {
		slots[i] = -1
	}
	disps := make([]Disp, bucketsLen)
	// tried[i] == generation marks slot i as taken by the current attempt.
	tried := make([]uint64, tableLen)
	generation := uint64(0)
	var pending []int

	for _, b := range buckets {
		placed := false
		for d1 := uint32(0); d1 < tableLen && !placed; d1++ {
		next:
			for d2 := uint32(0); d2 < tableLen; d2++ {
				pending = pending[:0]
				generation++
				for _, k := range b.keys {
					h := hashes[k]
					idx := Displace(h.F1, h.F2, d1, d2) % tableLen
					if slots[idx] != -1 || tried[idx] == generation {
						continue next
					}
					tried[idx] = generation
					pending = append(pending, int(idx))
				}
				disps[b.idx] = Disp{d1, d2}
				for i, idx := range pending {
					slots[idx] = b.keys[i]
				}
				placed = true
				break
			}
		}
		if !placed {
			return nil
		}
	}
	return &State{Key: seed, Disps: disps, Map: slots}
}
