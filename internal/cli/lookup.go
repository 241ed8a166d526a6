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
	"context"
	"errors"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/keyword"
	"go.fuchsia.dev/shac-project/kwphf/internal/reporting"
)

// ErrNotKeyword is returned by the lookup command when at least one word is
// not a keyword.
//
// The information will have been provided via the Report interface.
var ErrNotKeyword = errors.New("not a keyword")

type lookupCmd struct {
}

func (*lookupCmd) Name() string {
	return "lookup"
}

func (*lookupCmd) Description() string {
	return "Looks up words in the keyword table.\nExits with an error if any word is not a keyword."
}

func (*lookupCmd) SetFlags(f *flag.FlagSet) {
}

func (*lookupCmd) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("specify at least one word")
	}
	r := reporting.Get(stdout)
	var err error
	for _, w := range args {
		k, ok := keyword.Lookup(w)
		if !ok {
			err = ErrNotKeyword
		}
		if err2 := r.Lookup(w, k.String(), ok); err2 != nil {
			return err2
		}
	}
	return err
}
