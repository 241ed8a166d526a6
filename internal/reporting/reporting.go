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

// Package reporting prints lookup results and table checks.
package reporting

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Report receives the results of kwphf commands.
type Report interface {
	// Lookup reports the result of looking up query. value is only
	// meaningful when found is true.
	Lookup(query, value string, found bool) error
	// Entry reports one table entry.
	Entry(slot int, key, value string) error
	// CheckCompleted reports the result of a table check.
	CheckCompleted(check string, d time.Duration, err error) error
}

// Get returns the right reporting implementation based on the current
// environment.
//
// Colors are only used when out is a terminal.
func Get(out io.Writer) Report {
	f, _ := out.(*os.File)
	switch {
	case os.Getenv("GITHUB_RUN_ID") != "":
		// On GitHub Actions. Emits GitHub Workflows commands.
		return &github{out: out}
	case f != nil && os.Getenv("TERM") != "dumb" && isatty.IsTerminal(f.Fd()):
		// Active terminal. Colors! This includes VSCode's integrated terminal.
		return &interactive{out: colorable.NewColorable(f)}
	default:
		// Anything else, e.g. redirected output.
		return &basic{out: out}
	}
}

type basic struct {
	out io.Writer
}

func (b *basic) Lookup(query, value string, found bool) error {
	if !found {
		_, err := fmt.Fprintf(b.out, "%s: not a keyword\n", query)
		return err
	}
	_, err := fmt.Fprintf(b.out, "%s: %s\n", query, value)
	return err
}

func (b *basic) Entry(slot int, key, value string) error {
	_, err := fmt.Fprintf(b.out, "%d\t%q\t%s\n", slot, key, value)
	return err
}

func (b *basic) CheckCompleted(check string, d time.Duration, err error) error {
	if err != nil {
		_, err2 := fmt.Fprintf(b.out, "- %s (error in %s): %s\n", check, d.Round(time.Millisecond), err)
		return err2
	}
	_, err = fmt.Fprintf(b.out, "- %s (success in %s)\n", check, d.Round(time.Millisecond))
	return err
}

// github is the Report implementation when running inside a GitHub Actions
// Workflow.
//
// See https://docs.github.com/en/actions/using-workflows/workflow-commands-for-github-actions
type github struct {
	out io.Writer
}

func (g *github) Lookup(query, value string, found bool) error {
	if !found {
		_, err := fmt.Fprintf(g.out, "::warning title=lookup::%s is not a keyword\n", query)
		return err
	}
	_, err := fmt.Fprintf(g.out, "%s: %s\n", query, value)
	return err
}

func (g *github) Entry(slot int, key, value string) error {
	_, err := fmt.Fprintf(g.out, "%d\t%q\t%s\n", slot, key, value)
	return err
}

func (g *github) CheckCompleted(check string, d time.Duration, err error) error {
	if err != nil {
		_, err2 := fmt.Fprintf(g.out, "::error title=%s::%s\n", check, err)
		return err2
	}
	_, err = fmt.Fprintf(g.out, "::notice title=%s::success in %s\n", check, d.Round(time.Millisecond))
	return err
}

type interactive struct {
	out io.Writer
}

func (i *interactive) Lookup(query, value string, found bool) error {
	if !found {
		_, err := fmt.Fprintf(i.out, "%s%s%s: %snot a keyword%s\n", bold, query, reset, fgYellow, reset)
		return err
	}
	_, err := fmt.Fprintf(i.out, "%s%s%s: %s%s%s\n", bold, query, reset, fgHiCyan, value, reset)
	return err
}

func (i *interactive) Entry(slot int, key, value string) error {
	_, err := fmt.Fprintf(i.out, "%s%d%s\t%s%q%s\t%s%s%s\n", faint, slot, reset, fgHiBlue, key, reset, fgHiMagenta, value, reset)
	return err
}

func (i *interactive) CheckCompleted(check string, d time.Duration, err error) error {
	if err != nil {
		_, err2 := fmt.Fprintf(i.out, "%s- %s%s%s (error in %s): %s\n", reset, fgRed, check, reset, d.Round(time.Millisecond), err)
		return err2
	}
	_, err = fmt.Fprintf(i.out, "%s- %s%s%s (success in %s)\n", reset, fgGreen, check, reset, d.Round(time.Millisecond))
	return err
}
