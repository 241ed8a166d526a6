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

// Package doctest turns the Go code blocks of markdown documents into tests.
//
// Each fenced block whose info string starts with "go" becomes one test
// function. The block is a sequence of statements; it fails the test by
// panicking. Attributes after the language, separated by commas or spaces,
// change how the block is run:
//
//   - ignore: the test is skipped and the block is not compiled.
//   - no_run: the block is compiled but never executed.
//   - should_panic: the test fails unless the block panics.
package doctest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Block is one fenced code block.
type Block struct {
	// Source is the document the block was found in.
	Source string
	// Line is the 1-based line of the opening fence.
	Line int
	// Lang is the first word of the info string.
	Lang string
	// Attrs are the remaining words of the info string.
	Attrs []string
	// Code is the content of the block, without the fences.
	Code string
}

// Has returns true if the block has attribute attr.
func (b *Block) Has(attr string) bool {
	for _, a := range b.Attrs {
		if a == attr {
			return true
		}
	}
	return false
}

// IsTest returns true if the block is Go code.
func (b *Block) IsTest() bool {
	return b.Lang == "go"
}

// fence is an opening code fence.
type fence struct {
	char   byte
	n      int
	indent int
}

// Extract returns every fenced code block of a markdown document.
func Extract(name string, r io.Reader) ([]Block, error) {
	var out []Block
	var cur *Block
	var open fence
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; s.Scan(); lineno++ {
		line := s.Text()
		if cur == nil {
			f, info, ok := parseFence(line)
			if !ok {
				continue
			}
			if f.char == '`' && strings.ContainsRune(info, '`') {
				// Not a fence, an inline code span.
				continue
			}
			open = f
			cur = &Block{Source: name, Line: lineno}
			words := strings.FieldsFunc(info, func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t'
			})
			if len(words) != 0 {
				cur.Lang = words[0]
				cur.Attrs = words[1:]
			}
			lines = lines[:0]
			continue
		}
		if f, info, ok := parseFence(line); ok && f.char == open.char && f.n >= open.n && info == "" {
			cur.Code = strings.Join(lines, "")
			out = append(out, *cur)
			cur = nil
			continue
		}
		lines = append(lines, dedent(line, open.indent)+"\n")
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if cur != nil {
		return nil, fmt.Errorf("%s:%d: unterminated code block", name, cur.Line)
	}
	return out, nil
}

// parseFence parses a line as a code fence.
func parseFence(line string) (fence, string, bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent == len(line) {
		return fence{}, "", false
	}
	c := line[indent]
	if c != '`' && c != '~' {
		return fence{}, "", false
	}
	n := 0
	for indent+n < len(line) && line[indent+n] == c {
		n++
	}
	if n < 3 {
		return fence{}, "", false
	}
	return fence{char: c, n: n, indent: indent}, strings.TrimSpace(line[indent+n:]), true
}

// dedent removes up to n leading spaces.
func dedent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}
