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

package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"
	"go.fuchsia.dev/shac-project/kwphf/internal/keyword"
	"go.fuchsia.dev/shac-project/kwphf/internal/reporting"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type listCmd struct {
	json bool
}

func (*listCmd) Name() string {
	return "list"
}

func (*listCmd) Description() string {
	return "Prints the keyword table in slot order."
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Prints a JSON object mapping each key to its keyword")
}

func (c *listCmd) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.New("unexpected arguments")
	}
	if c.json {
		return c.printJSON()
	}
	r := reporting.Get(stdout)
	var err error
	slot := 0
	keyword.Range(func(s string, k keyword.Keyword) bool {
		err = r.Entry(slot, s, k.String())
		slot++
		return err == nil
	})
	return err
}

func (c *listCmd) printJSON() error {
	m := make(map[string]any, keyword.Len())
	keyword.Range(func(s string, k keyword.Keyword) bool {
		m[s] = k.String()
		return true
	})
	s, err := structpb.NewStruct(m)
	if err != nil {
		return err
	}
	b, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
	if err != nil {
		return err
	}
	_, err = stdout.Write(append(b, '\n'))
	return err
}
