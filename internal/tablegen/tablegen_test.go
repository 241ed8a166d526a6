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
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.fuchsia.dev/shac-project/kwphf/internal/phf"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	want := []*MapDef{
		{
			Name:      "keywords",
			ValueType: "Keyword",
			Entries: []EntryDef{
				{"loop", "Loop"},
				{"continue", "Continue"},
				{"break", "Break"},
				{"fn", "Fn"},
				{"extern", "Extern"},
			},
		},
	}
	for _, name := range []string{"keywords.star", "keywords.toml"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatal(err)
			}
			if f.Source != name {
				t.Fatalf("Source = %q", f.Source)
			}
			if diff := cmp.Diff(want, f.Maps, cmpopts.IgnoreFields(MapDef{}, "Pos")); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
			if err := f.Validate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestLoadStarlarkPos(t *testing.T) {
	t.Parallel()
	f, err := Load(filepath.Join("testdata", "keywords.star"))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Maps[0].Pos; !strings.HasPrefix(got, "keywords.star:2:") {
		t.Fatalf("unexpected position %q", got)
	}
}

func TestLoadStarlarkPrint(t *testing.T) {
	// Not parallel: it swaps stderrPrint.
	old := stderrPrint
	t.Cleanup(func() {
		stderrPrint = old
	})
	b := &bytes.Buffer{}
	stderrPrint = b
	f, err := Load(filepath.Join("testdata", "multi.star"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("[multi.star:6] generating 2 operators\n", b.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	var names []string
	for _, m := range f.Maps {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"operators", "empty"}, names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		src  string
		want string
	}{
		{
			"missing arg",
			`phf_map(name = "x", entries = [])`,
			"phf_map: missing argument for value_type",
		},
		{
			"not a tuple",
			`phf_map(name = "x", value_type = "int", entries = ["a"])`,
			"phf_map: entries[0]: expected a (key, value) tuple, got string",
		},
		{
			"not strings",
			`phf_map(name = "x", value_type = "int", entries = [("a", 1)])`,
			"phf_map: entries[0]: key and value must be strings",
		},
	}
	for i := range data {
		i := i
		t.Run(data[i].name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadStarlark("test.star", data[i].src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), data[i].want) {
				t.Fatalf("unexpected error %q, want %q", err, data[i].want)
			}
		})
	}
}

func TestLoadBacktrace(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join("testdata", "eval_error.star"))
	var bt BacktraceableError
	if !errors.As(err, &bt) {
		t.Fatalf("unexpected error %T: %v", err, err)
	}
	got := bt.Backtrace()
	for _, want := range []string{"eval_error.star:7:", "eval_error.star:2:", "in entries"} {
		if !strings.Contains(got, want) {
			t.Errorf("backtrace is missing %q:\n%s", want, got)
		}
	}
}

func TestLoadTOMLErrors(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "[[map]]\nname = \"x\"\ncolor = \"blue\"\n", `unknown key "map.color"`},
		{"syntax", "[[map]\n", "test.toml: "},
	}
	for i := range data {
		i := i
		t.Run(data[i].name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadTOML("test.toml", data[i].src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), data[i].want) {
				t.Fatalf("unexpected error %q, want %q", err, data[i].want)
			}
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "defs.yaml")
	if err := os.WriteFile(p, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "unsupported definitions format") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		f    File
		want string
	}{
		{
			"empty",
			File{Source: "a.star"},
			"a.star: no map defined",
		},
		{
			"bad name",
			File{Maps: []*MapDef{{Name: "1x", ValueType: "int", Pos: "p"}}},
			`p: name "1x" is not a valid Go identifier`,
		},
		{
			"no type",
			File{Maps: []*MapDef{{Name: "x", Pos: "p"}}},
			"p: map x: value_type is required",
		},
		{
			"no value",
			File{Maps: []*MapDef{{Name: "x", ValueType: "int", Pos: "p", Entries: []EntryDef{{Key: "a"}}}}},
			`p: map x: entry #1 ("a"): value is required`,
		},
		{
			"duplicate map",
			File{Maps: []*MapDef{{Name: "x", ValueType: "int", Pos: "p"}, {Name: "x", ValueType: "int", Pos: "q"}}},
			"q: map x was already defined",
		},
		{
			"duplicate keys",
			File{Maps: []*MapDef{{
				Name:      "x",
				ValueType: "int",
				Pos:       "p",
				Entries:   []EntryDef{{"a", "1"}, {"b", "2"}, {"a", "3"}, {"a", "4"}, {"b", "5"}},
			}}},
			"p: map x: entry #3: duplicate key \"a\"\nentry #5: duplicate key \"b\"",
		},
	}
	for i := range data {
		i := i
		t.Run(data[i].name, func(t *testing.T) {
			t.Parallel()
			err := data[i].f.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if diff := cmp.Diff(data[i].want, err.Error()); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()
	f, err := Load(filepath.Join("testdata", "keywords.star"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(f, Options{Package: "keyword"})
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "// Code generated by kwphf from keywords.star; DO NOT EDIT.\n\npackage keyword\n") {
		t.Fatalf("unexpected header:\n%s", got)
	}
	for _, want := range []string{
		"import \"" + DefaultPhfImport + "\"\n",
		"var keywords = phf.Map[Keyword]{\n",
		"Key: 0x476948b80f74962f,\n",
		"{Key: \"extern\", Value: Extern},\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "keywords_table.go", b, parser.ParseComments); err != nil {
		t.Fatal(err)
	}
}

func TestRenderMulti(t *testing.T) {
	t.Parallel()
	f, err := LoadStarlark("multi.star", `
phf_map(name = "a", value_type = "int", entries = [("x", "1")])
phf_map(name = "b", value_type = "string", entries = [])
`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(f, Options{Package: "p", PhfImport: "example.com/phf"})
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, "p.go", b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`"example.com/phf"`, af.Imports[0].Path.Value); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if len(af.Decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(af.Decls))
	}
}

// runtimeSrc declares the phf types the generated code refers to.
const runtimeSrc = `package phfrt

type Disp [2]uint32

type Entry[V any] struct {
	Key   string
	Value V
}

type Map[V any] struct {
	Key     uint64
	Disps   []Disp
	Entries []Entry[V]
}
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) {
	return f(path)
}

func TestRenderRuntimeImport(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	rt, err := parser.ParseFile(fset, "phfrt.go", runtimeSrc, 0)
	if err != nil {
		t.Fatal(err)
	}
	rtPkg, err := (&types.Config{}).Check("example.com/rt/phfrt", fset, []*ast.File{rt}, nil)
	if err != nil {
		t.Fatal(err)
	}
	imp := importerFunc(func(path string) (*types.Package, error) {
		if path != rtPkg.Path() {
			return nil, fmt.Errorf("unexpected import %q", path)
		}
		return rtPkg, nil
	})
	f := &File{
		Source: "nums.star",
		Maps: []*MapDef{{
			Name:      "digits",
			ValueType: "int",
			Entries:   []EntryDef{{"one", "1"}, {"two", "2"}},
			Pos:       "nums.star:1:8",
		}},
	}
	data := []struct {
		name       string
		wantImport string
	}{
		{"", "import phf \"example.com/rt/phfrt\"\n"},
		{"phfrt", "import \"example.com/rt/phfrt\"\n"},
		{"rt", "import rt \"example.com/rt/phfrt\"\n"},
	}
	for i, line := range data {
		// Not parallel: the subtests share rtPkg.
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			b, err := Render(f, Options{Package: "p", PhfImport: "example.com/rt/phfrt", PhfName: line.name})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(b), line.wantImport) {
				t.Fatalf("missing %q in:\n%s", line.wantImport, b)
			}
			fset := token.NewFileSet()
			af, err := parser.ParseFile(fset, "p.go", b, 0)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := (&types.Config{Importer: imp}).Check("p", fset, []*ast.File{af}, nil); err != nil {
				t.Fatalf("%s\n%s", err, b)
			}
		})
	}
	if _, err := Render(f, Options{Package: "p", PhfName: "a-b"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	f, err := Load(filepath.Join("testdata", "duplicate.star"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Render(f, Options{Package: "keyword"}); !errors.Is(err, phf.ErrDuplicateKey) {
		t.Fatalf("unexpected error %v", err)
	}
	f, err = Load(filepath.Join("testdata", "keywords.star"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Render(f, Options{Package: "not-a-package"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "keyword")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "table.go")
	if err := Generate(filepath.Join("testdata", "keywords.toml"), dst, Options{}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("\npackage keyword\n")) {
		t.Fatalf("package not derived from directory:\n%s", b)
	}
}

func TestGenerateDuplicate(t *testing.T) {
	t.Parallel()
	dst := filepath.Join(t.TempDir(), "table.go")
	err := Generate(filepath.Join("testdata", "duplicate.star"), dst, Options{Package: "keyword"})
	if !errors.Is(err, phf.ErrDuplicateKey) {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("artifact was written: %v", err)
	}
}
