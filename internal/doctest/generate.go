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

package doctest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"
)

// Options controls Generate.
type Options struct {
	// Docs are the markdown documents to process.
	Docs []string
	// OutDir is where the test files are written.
	OutDir string
	// Package is the name of the package under test.
	Package string
	// ImportDir is the directory of the package under test. Its import path
	// is derived from the enclosing go.mod.
	ImportDir string
}

// Generate writes one test file per document in OutDir.
//
// "README.md" produces "readme_test.go". Documents without Go code blocks are
// skipped.
func Generate(ctx context.Context, o *Options) error {
	if len(o.Docs) == 0 {
		return errors.New("no document specified")
	}
	outputs := make(map[string]string, len(o.Docs))
	for _, doc := range o.Docs {
		name := OutputName(doc)
		if prev, ok := outputs[name]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, doc, name)
		}
		outputs[name] = doc
	}
	importPath, err := ImportPath(o.ImportDir)
	if err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	for _, doc := range o.Docs {
		doc := doc
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return generateOne(doc, o.OutDir, RenderOptions{
				Package:    o.Package,
				ImportPath: importPath,
				Source:     doc,
			})
		})
	}
	return eg.Wait()
}

func generateOne(doc, outDir string, opts RenderOptions) error {
	b, err := RenderFile(doc, opts)
	if errors.Is(err, errNoTest) {
		log.Printf("%s: no Go code block, skipping", doc)
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, OutputName(doc)), b, 0o644)
}

// RenderFile extracts the code blocks of doc and renders them with Render.
func RenderFile(doc string, opts RenderOptions) ([]byte, error) {
	f, err := os.Open(doc)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	blocks, err := Extract(filepath.Base(doc), f)
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		blocks[i].Source = doc
	}
	return Render(blocks, opts)
}

// OutputName returns the test file name generated for a document.
func OutputName(doc string) string {
	base := strings.TrimSuffix(filepath.Base(doc), filepath.Ext(doc))
	base = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r == ' ' {
			return '_'
		}
		return r
	}, strings.ToLower(base))
	return base + "_test.go"
}

// ImportPath returns the import path of the package in dir, as defined by the
// enclosing go.mod.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for root := abs; ; {
		b, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			mod := modfile.ModulePath(b)
			if mod == "" {
				return "", fmt.Errorf("%s: no module directive", filepath.Join(root, "go.mod"))
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", err
			}
			return path.Join(mod, filepath.ToSlash(rel)), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("%s: no go.mod found", dir)
		}
		root = parent
	}
}
