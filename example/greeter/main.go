// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/z5labs/metasetup"
	"github.com/z5labs/metasetup/override"
	"github.com/z5labs/metasetup/settings"

	"go.uber.org/zap"
)

type Output struct {
	Upper  bool
	Prefix string
}

type Greeter struct {
	Greeting string
	Name     string
	Repeat   int
	Output   Output

	w io.Writer
}

// Ancestors of a Greeter, most general first.
var greeterPaths = []string{"greeter.Base", "greeter.Greeter"}

func init() {
	base, err := settings.Global("greeter.Base")
	if err != nil {
		panic(err)
	}
	err = base.MergeMap(map[string]any{
		"greeting":     "hello",
		"repeat":       1,
		"output.upper": false,
	})
	if err != nil {
		panic(err)
	}

	greeter, err := settings.Global("greeter.Greeter")
	if err != nil {
		panic(err)
	}
	err = greeter.MergeMap(map[string]any{
		"name":          "world",
		"output.prefix": "> ",
	})
	if err != nil {
		panic(err)
	}
}

func (g *Greeter) Run(ctx context.Context) error {
	msg := fmt.Sprintf("%s%s, %s", g.Output.Prefix, g.Greeting, g.Name)
	if g.Output.Upper {
		msg = strings.ToUpper(msg)
	}
	for range g.Repeat {
		_, err := fmt.Fprintln(g.w, msg)
		if err != nil {
			return err
		}
	}
	return nil
}

func buildGreeter(ctx context.Context) (metasetup.Runtime, error) {
	g := &Greeter{w: os.Stdout}
	_, err := metasetup.RegistryFromContext(ctx).ConfigureLayered(g, greeterPaths)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	err = metasetup.New(
		metasetup.Name("greeter"),
		metasetup.WithLogger(logger),
		metasetup.Settings(greeterPaths...),
		metasetup.Overrides(override.FromEnv("METASETUP_")),
		metasetup.WithRuntimeBuilderFunc(buildGreeter),
	).Run(os.Args[1:]...)
	if err != nil {
		logger.Error("greeter failed", zap.Error(err))
		os.Exit(1)
	}
}
