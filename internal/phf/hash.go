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

// The hash must produce the same values in the generator and in the binary
// consuming the generated table, on every platform and Go release. This
// excludes hash/maphash, which is randomized per process.

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
	golden64    = 0x9e3779b97f4a7c15
)

// Hashes is the set of hashes of one key, as used by the CHD algorithm.
//
// G selects the bucket, F1 and F2 are combined with the bucket displacement
// to select the slot.
type Hashes struct {
	G  uint32
	F1 uint32
	F2 uint32
}

// Hash returns the hashes of key for the given seed.
func Hash(key string, seed uint64) Hashes {
	h := uint64(fnvOffset64) ^ seed
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	h = mix(h)
	h2 := mix(h + golden64)
	return Hashes{
		G:  uint32(h >> 32),
		F1: uint32(h),
		F2: uint32(h2 >> 32),
	}
}

// Displace returns the slot hash for a key with hashes f1 and f2 in a bucket
// displaced by (d1, d2).
//
// The caller reduces the result modulo the table length.
func Displace(f1, f2, d1, d2 uint32) uint32 {
	return d2 + f1*d1 + f2
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// seeds is a deterministic splitmix64 sequence.
type seeds struct {
	state uint64
}

func (s *seeds) next() uint64 {
	s.state += golden64
	return mix(s.state)
}
