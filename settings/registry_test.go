// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegistry_Global(t *testing.T) {
	t.Run("will return the same namespace", func(t *testing.T) {
		t.Run("if called twice with the same path", func(t *testing.T) {
			r := NewRegistry()

			a, err := r.Global("a.b")
			require.Nil(t, err)
			b, err := r.Global("a.b")
			require.Nil(t, err)

			if !assert.Same(t, a, b) {
				return
			}

			require.Nil(t, a.Set("timeout", 10))

			v, err := b.Get("timeout")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 10, v) {
				return
			}
			if !assert.Equal(t, "a.b", b.Name()) {
				return
			}
		})

		t.Run("if the namespace is reached through its parent", func(t *testing.T) {
			r := NewRegistry()

			a, err := r.Global("a")
			require.Nil(t, err)
			ab, err := r.Global("a.b")
			require.Nil(t, err)

			v, err := a.Get("b")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Same(t, ab, v) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the path resolves to a leaf", func(t *testing.T) {
			r := NewRegistry()
			require.Nil(t, r.Root().Set("a.b", 1))

			_, err := r.Global("a.b")

			var perr PathError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})

		t.Run("if the path contains a reserved name", func(t *testing.T) {
			r := NewRegistry()

			_, err := r.Global("a.__init__")

			var rerr ReservedNameError
			if !assert.ErrorAs(t, err, &rerr) {
				return
			}
		})
	})
}

func TestRegistry_Local(t *testing.T) {
	t.Run("will return an empty tree", func(t *testing.T) {
		t.Run("if the path has never been populated", func(t *testing.T) {
			r := NewRegistry()

			local, err := r.Local("never.populated")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 0, local.Len()) {
				return
			}
			if !assert.False(t, r.Root().Contains("never")) {
				return
			}
		})
	})

	t.Run("will return an independent copy", func(t *testing.T) {
		t.Run("if the global namespace is populated", func(t *testing.T) {
			r := NewRegistry()
			global, err := r.Global("svc")
			require.Nil(t, err)
			require.Nil(t, global.Set("http.port", 80))

			local, err := r.Local("svc")
			require.Nil(t, err)
			require.Nil(t, local.Set("http.port", 8080))
			require.Nil(t, r.Merge(local, map[string]any{"http.host": "localhost"}))

			v, err := global.Get("http.port")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 80, v) {
				return
			}
			if !assert.False(t, global.Contains("http.host")) {
				return
			}

			other, err := r.Local("svc")
			require.Nil(t, err)
			if !assert.NotSame(t, local, other) {
				return
			}
			if !assert.Equal(t, map[string]any{"http": map[string]any{"port": 80}}, other.Map()) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the path resolves to a leaf", func(t *testing.T) {
			r := NewRegistry()
			require.Nil(t, r.Root().Set("a.b", 1))

			_, err := r.Local("a.b")

			var perr PathError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})

		t.Run("if the path traverses through a leaf", func(t *testing.T) {
			r := NewRegistry()
			require.Nil(t, r.Root().Set("a", 1))

			_, err := r.Local("a.b")

			var perr PathError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})
	})
}

func TestRegistry_Layer(t *testing.T) {
	t.Run("will let more specific paths win", func(t *testing.T) {
		t.Run("if the paths are ordered from most general to most specific", func(t *testing.T) {
			r := NewRegistry()
			require.Nil(t, r.Root().MergeMap(map[string]any{
				"pkg.Base.timeout":    10,
				"pkg.Base.http.host":  "localhost",
				"pkg.Child.timeout":   30,
				"pkg.Child.retries":   3,
				"pkg.Child.http.port": 8080,
			}))

			layered, err := r.Layer("pkg.Base", "pkg.Missing", "pkg.Child")
			if !assert.Nil(t, err) {
				return
			}

			expected := map[string]any{
				"timeout": 30,
				"http": map[string]any{
					"host": "localhost",
					"port": 8080,
				},
				"retries": 3,
			}
			if !assert.Equal(t, expected, layered.Map()) {
				return
			}
			if !assert.Equal(t, []string{"http", "timeout", "retries"}, layered.Keys()) {
				return
			}
		})
	})

	t.Run("will log the layered paths", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := NewRegistry(Logger(zap.New(core)))

		_, err := r.Layer("a", "b")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 1, logs.FilterMessage("layered settings").Len()) {
			return
		}
	})
}

func TestDefault(t *testing.T) {
	t.Run("will share namespaces across package level calls", func(t *testing.T) {
		global, err := Global("settings_test.TestDefault")
		require.Nil(t, err)
		require.Nil(t, global.Set("timeout", 5))

		local, err := Local("settings_test.TestDefault")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, map[string]any{"timeout": 5}, local.Map()) {
			return
		}
		if !assert.Same(t, Default().Root(), defaultRegistry.Root()) {
			return
		}

		var target struct{ Timeout int }
		_, err = ConfigureLayered(&target, []string{"settings_test.TestDefault"})
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 5, target.Timeout) {
			return
		}
	})
}
