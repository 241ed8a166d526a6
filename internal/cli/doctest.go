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
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/doctest"
)

type doctestCmd struct {
	outDir    string
	pkg       string
	importDir string
}

func (*doctestCmd) Name() string {
	return "doctest"
}

func (*doctestCmd) Description() string {
	return "Generates Go tests from the Go code blocks of markdown documents."
}

func (c *doctestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outDir, "out-dir", ".", "directory where the test files are written")
	f.StringVar(&c.importDir, "import-dir", ".", "directory of the package the code blocks use")
	f.StringVar(&c.pkg, "package", "", "name of the package under test; defaults to the import directory name")
}

func (c *doctestCmd) Execute(ctx context.Context, docs []string) error {
	pkg := c.pkg
	if pkg == "" {
		abs, err := filepath.Abs(c.importDir)
		if err != nil {
			return err
		}
		pkg = filepath.Base(abs)
	}
	return doctest.Generate(ctx, &doctest.Options{
		Docs:      docs,
		OutDir:    c.outDir,
		Package:   pkg,
		ImportDir: c.importDir,
	})
}
