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

// Package tablegen loads perfect hash table definitions and renders them as
// Go source files.
package tablegen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.starlark.net/starlark"
)

// File is a parsed definitions file.
type File struct {
	// Source is the file name the definitions were loaded from.
	Source string
	Maps   []*MapDef
}

// MapDef is the definition of one generated phf.Map variable.
type MapDef struct {
	// Name is the Go variable name.
	Name string `toml:"name"`
	// ValueType is the Go type of the values.
	ValueType string `toml:"value_type"`
	// Entries are in declaration order.
	Entries []EntryDef `toml:"entry"`
	// Pos is where the map was defined, for error messages.
	Pos string `toml:"-"`
}

// EntryDef is a key and the Go expression of its value.
type EntryDef struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Load loads a definitions file.
//
// The format is selected by extension: .star for starlark, .toml for TOML.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	switch filepath.Ext(path) {
	case ".star":
		return LoadStarlark(name, string(b))
	case ".toml":
		return LoadTOML(name, string(b))
	default:
		return nil, fmt.Errorf("%s: unsupported definitions format, expecting .star or .toml", path)
	}
}

// LoadTOML parses TOML definitions.
//
// The expected layout is:
//
//	[[map]]
//	name = "keywords"
//	value_type = "Keyword"
//
//	[[map.entry]]
//	key = "loop"
//	value = "Loop"
func LoadTOML(name, src string) (*File, error) {
	var doc struct {
		Map []*MapDef `toml:"map"`
	}
	meta, err := toml.Decode(src, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if u := meta.Undecoded(); len(u) != 0 {
		return nil, fmt.Errorf("%s: unknown key %q", name, u[0].String())
	}
	for i, m := range doc.Map {
		m.Pos = fmt.Sprintf("%s: map #%d", name, i+1)
	}
	return &File{Source: name, Maps: doc.Map}, nil
}

// stderrPrint is where print() calls are sent.
var stderrPrint io.Writer = os.Stderr

const fileCtxKey = "kwphf.File"

// LoadStarlark executes starlark definitions.
//
// The file declares tables by calling phf_map():
//
//	phf_map(
//	    name = "keywords",
//	    value_type = "Keyword",
//	    entries = [
//	        ("loop", "Loop"),
//	    ],
//	)
func LoadStarlark(name, src string) (*File, error) {
	f := &File{Source: name}
	th := &starlark.Thread{
		Name: name,
		Print: func(th *starlark.Thread, msg string) {
			pos := th.CallFrame(1).Pos
			fmt.Fprintf(stderrPrint, "[%s:%d] %s\n", pos.Filename(), pos.Line, msg)
		},
	}
	th.SetLocal(fileCtxKey, f)
	if _, err := starlark.ExecFile(th, name, src, getPredeclared()); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, &evalError{evalErr}
		}
		return nil, err
	}
	return f, nil
}

// getPredeclared returns the predeclared starlark symbols.
func getPredeclared() starlark.StringDict {
	return starlark.StringDict{
		"phf_map": starlark.NewBuiltin("phf_map", phfMap),
	}
}

// phfMap implements native function phf_map().
func phfMap(th *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, valueType string
	var entries *starlark.List
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"value_type", &valueType,
		"entries", &entries,
	); err != nil {
		return nil, err
	}
	m := &MapDef{
		Name:      name,
		ValueType: valueType,
		Pos:       th.CallFrame(1).Pos.String(),
	}
	for i := 0; i < entries.Len(); i++ {
		t, ok := entries.Index(i).(starlark.Tuple)
		if !ok || len(t) != 2 {
			return nil, fmt.Errorf("%s: entries[%d]: expected a (key, value) tuple, got %s", fn.Name(), i, entries.Index(i).Type())
		}
		k, ok1 := starlark.AsString(t[0])
		v, ok2 := starlark.AsString(t[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: entries[%d]: key and value must be strings", fn.Name(), i)
		}
		m.Entries = append(m.Entries, EntryDef{Key: k, Value: v})
	}
	f := th.Local(fileCtxKey).(*File)
	f.Maps = append(f.Maps, m)
	return starlark.None, nil
}
