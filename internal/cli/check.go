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
	"time"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/keyword"
	"go.fuchsia.dev/shac-project/kwphf/internal/reporting"
)

type checkCmd struct {
}

func (*checkCmd) Name() string {
	return "check"
}

func (*checkCmd) Description() string {
	return "Verifies the compiled-in keyword table."
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {
}

func (*checkCmd) Execute(ctx context.Context, args []string) error {
	start := time.Now()
	err := keyword.SelfCheck()
	if err2 := reporting.Get(stdout).CheckCompleted("keywords", time.Since(start), err); err == nil {
		err = err2
	}
	return err
}
