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
	"fmt"

	flag "github.com/spf13/pflag"
)

type kwphfVersion [3]int

// Version is the current tool version.
var Version = kwphfVersion{0, 1, 0}

func (v kwphfVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

type versionCmd struct {
}

func (*versionCmd) Name() string {
	return "version"
}

func (*versionCmd) Description() string {
	return "Print kwphf version."
}

func (*versionCmd) SetFlags(f *flag.FlagSet) {
}

func (*versionCmd) Execute(ctx context.Context, args []string) error {
	_, err := fmt.Fprintf(stdout, "kwphf v%s\n", Version)
	return err
}
