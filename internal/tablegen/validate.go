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

package tablegen

import (
	"errors"
	"fmt"
	"go/token"

	"go.chromium.org/luci/common/data/stringset"
	"go.fuchsia.dev/shac-project/kwphf/internal/phf"
)

// Validate verifies the definitions can be rendered.
//
// Duplicate keys are reported with every other problem of the same map.
func (f *File) Validate() error {
	if len(f.Maps) == 0 {
		return fmt.Errorf("%s: no map defined", f.Source)
	}
	names := stringset.New(len(f.Maps))
	for _, m := range f.Maps {
		if err := m.Validate(); err != nil {
			return err
		}
		if !names.Add(m.Name) {
			return fmt.Errorf("%s: map %s was already defined", m.Pos, m.Name)
		}
	}
	return nil
}

// Validate verifies a single map definition.
func (m *MapDef) Validate() error {
	if !token.IsIdentifier(m.Name) {
		return fmt.Errorf("%s: name %q is not a valid Go identifier", m.Pos, m.Name)
	}
	if m.ValueType == "" {
		return fmt.Errorf("%s: map %s: value_type is required", m.Pos, m.Name)
	}
	var errs []error
	seen := stringset.New(len(m.Entries))
	reported := stringset.New(0)
	for i, e := range m.Entries {
		if e.Value == "" {
			errs = append(errs, fmt.Errorf("entry #%d (%q): value is required", i+1, e.Key))
		}
		if !seen.Add(e.Key) && reported.Add(e.Key) {
			errs = append(errs, fmt.Errorf("entry #%d: %w %q", i+1, phf.ErrDuplicateKey, e.Key))
		}
	}
	if len(errs) != 0 {
		return fmt.Errorf("%s: map %s: %w", m.Pos, m.Name, errors.Join(errs...))
	}
	return nil
}
