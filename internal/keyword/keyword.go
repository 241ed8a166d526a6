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

// Package keyword maps keyword strings to Keyword values.
//
// The table is generated from keywords.star by kwphf and compiled into the
// binary; nothing is computed at startup.
package keyword

//go:generate go run golang.org/x/tools/cmd/stringer -type=Keyword
//go:generate go run regen.go

import (
	"errors"
	"fmt"
)

// Keyword is one of the recognized keywords.
type Keyword int

// Keywords. Their integer representations may change. Don't rely on them.
const (
	Loop Keyword = iota
	Continue
	Break
	Fn
	Extern
)

// ErrSelfCheck is returned by SelfCheck when the compiled-in table is broken.
var ErrSelfCheck = errors.New("self-check failed")

// All returns every keyword, in declaration order.
func All() []Keyword {
	return []Keyword{Loop, Continue, Break, Fn, Extern}
}

// Lookup returns the keyword spelled s.
//
// Matching is exact and case sensitive. The second return value is false if
// s is not a keyword.
func Lookup(s string) (Keyword, bool) {
	return keywords.Get(s)
}

// Len returns the number of entries in the table.
func Len() int {
	return keywords.Len()
}

// Range calls f for each table entry until f returns false.
func Range(f func(s string, k Keyword) bool) {
	keywords.Range(f)
}

// SelfCheck verifies the compiled-in table.
func SelfCheck() error {
	if k, ok := Lookup("loop"); !ok || k != Loop {
		return fmt.Errorf("%w: Lookup(\"loop\") = %s, %t; want %s, true", ErrSelfCheck, k, ok, Loop)
	}
	if n := Len(); n != len(All()) {
		return fmt.Errorf("%w: table has %d entries, want %d", ErrSelfCheck, n, len(All()))
	}
	var err error
	Range(func(s string, k Keyword) bool {
		if got, ok := Lookup(s); !ok || got != k {
			err = fmt.Errorf("%w: Lookup(%q) = %s, %t; want %s, true", ErrSelfCheck, s, got, ok, k)
			return false
		}
		return true
	})
	return err
}
