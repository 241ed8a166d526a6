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

// Package codegen emits phf.Map literals as Go source.
//
// Values are Go expressions copied verbatim into the output, e.g. "Loop" or
// "keyword.Loop".
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"go.chromium.org/luci/common/data/stringset"
	"go.chromium.org/luci/common/errors"
	"go.fuchsia.dev/shac-project/kwphf/internal/phf"
)

// Map is a builder for a phf.Map literal.
type Map struct {
	valueType string
	phfName   string
	keys      []string
	values    []string
}

// NewMap returns a builder for a phf.Map[valueType].
func NewMap(valueType string) *Map {
	return &Map{valueType: valueType, phfName: "phf"}
}

// PhfPath sets the qualifier used to refer to the phf package in the output.
//
// Use an empty string when generating code inside package phf itself.
func (m *Map) PhfPath(name string) *Map {
	m.phfName = name
	return m
}

// Entry adds a key and the Go expression of its value.
func (m *Map) Entry(key, value string) *Map {
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	return m
}

// Len returns the number of entries added so far.
func (m *Map) Len() int {
	return len(m.keys)
}

// Build generates the perfect hash and returns the literal.
//
// All duplicate keys are reported at once, in the returned error.
func (m *Map) Build() (string, error) {
	if err := m.checkDuplicates(); err != nil {
		return "", err
	}
	st, err := phf.Generate(m.keys)
	if err != nil {
		return "", errors.Annotate(err, "generating %s table", m.valueType).Err()
	}
	return m.render(st), nil
}

func (m *Map) checkDuplicates() error {
	var errs errors.MultiError
	seen := stringset.New(len(m.keys))
	reported := stringset.New(0)
	for _, k := range m.keys {
		if !seen.Add(k) && reported.Add(k) {
			errs = append(errs, fmt.Errorf("%w %q", phf.ErrDuplicateKey, k))
		}
	}
	if len(errs) != 0 {
		return errs
	}
	return nil
}

func (m *Map) qualified(name string) string {
	if m.phfName == "" {
		return name
	}
	return m.phfName + "." + name
}

func (m *Map) render(st *phf.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]{\n", m.qualified("Map"), m.valueType)
	fmt.Fprintf(&b, "\tKey: %#x,\n", st.Key)
	fmt.Fprintf(&b, "\tDisps: []%s{\n", m.qualified("Disp"))
	for _, d := range st.Disps {
		fmt.Fprintf(&b, "\t\t{%d, %d},\n", d[0], d[1])
	}
	b.WriteString("\t},\n")
	fmt.Fprintf(&b, "\tEntries: []%s[%s]{\n", m.qualified("Entry"), m.valueType)
	for _, i := range st.Map {
		fmt.Fprintf(&b, "\t\t{Key: %s, Value: %s},\n", strconv.Quote(m.keys[i]), m.values[i])
	}
	b.WriteString("\t},\n}")
	return b.String()
}
