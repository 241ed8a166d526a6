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
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/tools/imports"
)

// RenderOptions controls Render.
type RenderOptions struct {
	// Package is the name of the package under test. The generated file is
	// in the external test package.
	Package string
	// ImportPath is the import path of the package under test.
	ImportPath string
	// Source is the document name, used in the header and test names.
	Source string
}

// errNoTest is returned by Render when there is no Go block.
var errNoTest = errors.New("no Go code block")

// Render returns a Go test file with one test per Go block.
//
// Imports used by the blocks are added automatically.
func Render(blocks []Block, opts RenderOptions) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	prefix := TestPrefix(opts.Source)
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by kwphf from %s; DO NOT EDIT.\n\n", filepath.Base(opts.Source))
	fmt.Fprintf(&b, "package %s_test\n\n", opts.Package)
	b.WriteString("import (\n\t\"testing\"\n")
	if opts.ImportPath != "" {
		fmt.Fprintf(&b, "\n\t%s\n", strconv.Quote(opts.ImportPath))
	}
	b.WriteString(")\n")
	n := 0
	for i := range blocks {
		if !blocks[i].IsTest() {
			continue
		}
		n++
		fmt.Fprintf(&b, "\nfunc %sLine%d(t *testing.T) {\n", prefix, blocks[i].Line)
		writeBody(&b, &blocks[i])
		b.WriteString("}\n")
	}
	if n == 0 {
		return nil, errNoTest
	}
	out, err := imports.Process(opts.Source+"_test.go", []byte(b.String()), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: generated code is invalid: %w", opts.Source, err)
	}
	return out, nil
}

func writeBody(b *strings.Builder, blk *Block) {
	if blk.Has("ignore") {
		b.WriteString("\tt.Skip(\"ignored\")\n")
		return
	}
	indent := "\t"
	if blk.Has("should_panic") {
		b.WriteString("\tdefer func() {\n\t\tif recover() == nil {\n\t\t\tt.Fatal(\"expected a panic\")\n\t\t}\n\t}()\n")
	}
	if blk.Has("no_run") {
		b.WriteString("\t_ = func() {\n")
		indent = "\t\t"
	}
	// Keep the document's position in compiler errors and panics.
	fmt.Fprintf(b, "//line %s:%d\n", filepath.Base(blk.Source), blk.Line+1)
	for _, l := range strings.SplitAfter(blk.Code, "\n") {
		if strings.TrimSpace(l) == "" {
			if l != "" {
				b.WriteString("\n")
			}
			continue
		}
		b.WriteString(indent + l)
	}
	if indent == "\t\t" {
		b.WriteString("\t}\n")
	}
}

// TestPrefix returns the test function name prefix for a document.
//
// "README.md" becomes "TestReadme", "getting-started.md" becomes
// "TestGettingStarted".
func TestPrefix(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := "Test"
	for _, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		out += string(r)
	}
	return out
}
