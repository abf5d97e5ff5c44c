// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/z5labs/metasetup/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreeter_Run(t *testing.T) {
	t.Run("will greet with the layered defaults", func(t *testing.T) {
		var buf bytes.Buffer
		g := &Greeter{w: &buf}

		_, err := settings.ConfigureLayered(g, greeterPaths)
		require.Nil(t, err)

		err = g.Run(context.Background())
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "> hello, world\n", buf.String()) {
			return
		}
	})

	t.Run("will apply local overrides", func(t *testing.T) {
		layered, err := settings.Layer(greeterPaths...)
		require.Nil(t, err)
		require.Nil(t, settings.Default().Merge(layered, map[string]any{
			"repeat":       2,
			"output.upper": true,
		}))

		var buf bytes.Buffer
		g := &Greeter{w: &buf}
		err = settings.Configure(layered, g)
		require.Nil(t, err)

		err = g.Run(context.Background())
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "> HELLO, WORLD\n> HELLO, WORLD\n", buf.String()) {
			return
		}
	})
}
