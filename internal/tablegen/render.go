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
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.fuchsia.dev/shac-project/kwphf/internal/phf/codegen"
	"golang.org/x/tools/imports"
)

// DefaultPhfImport is the import path of the phf runtime package.
const DefaultPhfImport = "go.fuchsia.dev/shac-project/kwphf/internal/phf"

// Options controls Render.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// PhfImport is the import path of the phf package. Defaults to
	// DefaultPhfImport.
	PhfImport string
	// PhfName is the name the phf package is imported as. Defaults to "phf".
	PhfName string
}

// Render returns the Go source file defining every map in f.
func Render(f *File, opts Options) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	phfImport := opts.PhfImport
	if phfImport == "" {
		phfImport = DefaultPhfImport
	}
	phfName := opts.PhfName
	if phfName == "" {
		phfName = "phf"
	}
	if !token.IsIdentifier(phfName) {
		return nil, fmt.Errorf("invalid phf package name %q", phfName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by kwphf from %s; DO NOT EDIT.\n\n", filepath.Base(f.Source))
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)
	// The last path element is not necessarily the package name.
	if path.Base(phfImport) == phfName {
		fmt.Fprintf(&b, "import %s\n", strconv.Quote(phfImport))
	} else {
		fmt.Fprintf(&b, "import %s %s\n", phfName, strconv.Quote(phfImport))
	}
	for _, m := range f.Maps {
		g := codegen.NewMap(m.ValueType).PhfPath(phfName)
		for _, e := range m.Entries {
			g.Entry(e.Key, e.Value)
		}
		lit, err := g.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: map %s: %w", m.Pos, m.Name, err)
		}
		fmt.Fprintf(&b, "\nvar %s = %s\n", m.Name, lit)
	}
	out, err := imports.Process(f.Source+".go", []byte(b.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}

// Generate loads the definitions at src and writes the rendered table to dst.
//
// dst is left untouched on error.
func Generate(src, dst string, opts Options) error {
	f, err := Load(src)
	if err != nil {
		return err
	}
	return Write(f, dst, opts)
}

// Write renders f to dst.
//
// The package defaults to the name of dst's directory. dst is left untouched
// on error.
func Write(f *File, dst string, opts Options) error {
	if opts.Package == "" {
		opts.Package = filepath.Base(filepath.Dir(absPath(dst)))
	}
	b, err := Render(f, opts)
	if err != nil {
		return err
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	return nil
}

func absPath(p string) string {
	a, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return a
}
