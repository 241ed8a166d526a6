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

//go:build ignore

// regen regenerates keywords_table.go and the README tests.
//
// It doesn't go through the kwphf executable since the executable refuses to
// start with a stale table.
package main

import (
	"context"
	"log"

	"go.fuchsia.dev/shac-project/kwphf/internal/doctest"
	"go.fuchsia.dev/shac-project/kwphf/internal/tablegen"
)

func main() {
	log.SetFlags(0)
	if err := tablegen.Generate("keywords.star", "keywords_table.go", tablegen.Options{Package: "keyword"}); err != nil {
		log.Fatal(err)
	}
	err := doctest.Generate(context.Background(), &doctest.Options{
		Docs:      []string{"../../README.md"},
		OutDir:    ".",
		Package:   "keyword",
		ImportDir: ".",
	})
	if err != nil {
		log.Fatal(err)
	}
}
