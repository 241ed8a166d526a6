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
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/tablegen"
)

type genCmd struct {
	out       string
	pkg       string
	phfImport string
	phfName   string
	name      string
	valueType string
	entries   entryFlag
}

func (*genCmd) Name() string {
	return "gen"
}

func (*genCmd) Description() string {
	return "Generates a perfect hash table Go file from a .star or .toml\ndefinitions file, or from --entry flags."
}

func (c *genCmd) SetFlags(f *flag.FlagSet) {
	f.StringVarP(&c.out, "out", "o", "", "output file; defaults to stdout")
	f.StringVar(&c.pkg, "package", "", "package name; defaults to the output file directory name")
	f.StringVar(&c.phfImport, "phf-import", tablegen.DefaultPhfImport, "import path of the phf runtime package")
	f.StringVar(&c.phfName, "phf-name", "phf", "name the phf runtime package is imported as")
	f.StringVar(&c.name, "name", "table", "variable name, with --entry")
	f.StringVar(&c.valueType, "value-type", "string", "Go type of the values, with --entry")
	f.Var(&c.entries, "entry", "table entry as key=value, where value is a Go expression; can be repeated")
}

func (c *genCmd) Execute(ctx context.Context, args []string) error {
	f, err := c.definitions(args)
	if err != nil {
		return err
	}
	opts := tablegen.Options{Package: c.pkg, PhfImport: c.phfImport, PhfName: c.phfName}
	if c.out != "" {
		return tablegen.Write(f, c.out, opts)
	}
	if opts.Package == "" {
		wd, err := filepath.Abs(".")
		if err != nil {
			return err
		}
		opts.Package = filepath.Base(wd)
	}
	b, err := tablegen.Render(f, opts)
	if err != nil {
		return err
	}
	_, err = stdout.Write(b)
	return err
}

func (c *genCmd) definitions(args []string) (*tablegen.File, error) {
	switch {
	case len(args) == 1 && len(c.entries.entries) == 0:
		return tablegen.Load(args[0])
	case len(args) == 0 && len(c.entries.entries) != 0:
		return &tablegen.File{
			Source: "command line",
			Maps: []*tablegen.MapDef{{
				Name:      c.name,
				ValueType: c.valueType,
				Entries:   c.entries.entries,
				Pos:       "--entry",
			}},
		}, nil
	default:
		return nil, errors.New("specify either one definitions file or --entry flags")
	}
}
