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

// Package main is the kwphf executable.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/cli"
	"go.fuchsia.dev/shac-project/kwphf/internal/keyword"
	"go.fuchsia.dev/shac-project/kwphf/internal/tablegen"
)

func main() {
	// The compiled-in table is verified before anything else runs.
	if code := startupCheck(os.Stderr, keyword.SelfCheck); code != 0 {
		os.Exit(code)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, syscall.SIGTERM, syscall.SIGINT)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-signalChannel
		cancel()
		// Only dump goroutines on SIGTERM; a SIGINT comes from a human.
		if sig == syscall.SIGTERM {
			_ = pprof.Lookup("goroutine").WriteTo(os.Stderr, 1)
		}
	}()

	if err := cli.Main(ctx, os.Args); err != nil && !errors.Is(err, flag.ErrHelp) {
		var stackerr tablegen.BacktraceableError
		if errors.As(err, &stackerr) {
			_, _ = os.Stderr.WriteString(stackerr.Backtrace())
		}
		// If stderr is a terminal, absent keywords were already reported and a
		// cancellation is most likely a Ctrl-C.
		if !isatty.IsTerminal(os.Stderr.Fd()) ||
			(!errors.Is(err, cli.ErrNotKeyword) && !errors.Is(err, context.Canceled)) {
			_, _ = fmt.Fprintf(os.Stderr, "kwphf: %s\n", err)
		}
		os.Exit(1)
	}
}

// startupCheck runs check and returns the process exit code: 0 on success, 2
// after printing the error to w.
func startupCheck(w io.Writer, check func() error) int {
	if err := check(); err != nil {
		_, _ = fmt.Fprintf(w, "kwphf: %s\n", err)
		return 2
	}
	return 0
}
