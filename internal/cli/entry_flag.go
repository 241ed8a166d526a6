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

package cli

import (
	"errors"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/tablegen"
)

// entryFlag collects key=value table entries in command line order.
type entryFlag struct {
	entries []tablegen.EntryDef
}

var _ flag.Value = (*entryFlag)(nil)

func (v *entryFlag) String() string {
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = strconv.Quote(e.Key) + "=" + e.Value
	}
	return "[" + strings.Join(out, ",") + "]"
}

func (v *entryFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || value == "" {
		return errors.New("must be of the form key=value")
	}
	for _, e := range v.entries {
		if e.Key == key {
			return errors.New("duplicate key")
		}
	}
	v.entries = append(v.entries, tablegen.EntryDef{Key: key, Value: value})
	return nil
}

func (v *entryFlag) Type() string {
	return "key=value"
}
