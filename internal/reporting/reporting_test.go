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

package reporting

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-colorable"
)

func TestGet(t *testing.T) {
	t.Setenv("GITHUB_RUN_ID", "")
	buf := bytes.Buffer{}
	if _, ok := Get(&buf).(*basic); !ok {
		t.Fatal("expected basic reporter for a buffer")
	}
	t.Setenv("GITHUB_RUN_ID", "1")
	if _, ok := Get(&buf).(*github); !ok {
		t.Fatal("expected github reporter")
	}
}

func emitAll(t *testing.T, r Report) {
	t.Helper()
	if err := r.Lookup("loop", "Loop", true); err != nil {
		t.Fatal(err)
	}
	if err := r.Lookup("while", "", false); err != nil {
		t.Fatal(err)
	}
	if err := r.Entry(0, "extern", "Extern"); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckCompleted("table", time.Millisecond, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckCompleted("table", time.Millisecond, errors.New("bad")); err != nil {
		t.Fatal(err)
	}
}

func TestBasic(t *testing.T) {
	t.Parallel()
	buf := bytes.Buffer{}
	emitAll(t, &basic{out: &buf})
	want := "loop: Loop\n" +
		"while: not a keyword\n" +
		"0\t\"extern\"\tExtern\n" +
		"- table (success in 1ms)\n" +
		"- table (error in 1ms): bad\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGitHub(t *testing.T) {
	t.Parallel()
	buf := bytes.Buffer{}
	emitAll(t, &github{out: &buf})
	want := "loop: Loop\n" +
		"::warning title=lookup::while is not a keyword\n" +
		"0\t\"extern\"\tExtern\n" +
		"::notice title=table::success in 1ms\n" +
		"::error title=table::bad\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInteractive(t *testing.T) {
	t.Parallel()
	buf := bytes.Buffer{}
	// Strip the ANSI codes, so only the text is compared.
	emitAll(t, &interactive{out: colorable.NewNonColorable(&buf)})
	want := "loop: Loop\n" +
		"while: not a keyword\n" +
		"0\t\"extern\"\tExtern\n" +
		"- table (success in 1ms)\n" +
		"- table (error in 1ms): bad\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestANSICode(t *testing.T) {
	t.Parallel()
	if diff := cmp.Diff("\x1b[96m", fgHiCyan.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("\x1b[31m", fgRed.String()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
