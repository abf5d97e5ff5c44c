// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"errors"
	"testing"

	"github.com/z5labs/metasetup/settings"

	"github.com/stretchr/testify/assert"
)

func TestRead(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if one of the Sources fails to apply itself to the tree", func(t *testing.T) {
			srcErr := errors.New("failed to apply overrides")
			src := SourceFunc(func(t *settings.Tree) error {
				return srcErr
			})

			_, err := Read(Map{"a": 1}, src)
			if !assert.ErrorIs(t, err, srcErr) {
				return
			}
		})
	})

	t.Run("will return an empty tree", func(t *testing.T) {
		t.Run("if no sources are provided", func(t *testing.T) {
			tree, err := Read()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 0, tree.Len()) {
				return
			}
		})
	})

	t.Run("will override values", func(t *testing.T) {
		t.Run("if multiple sources are provided", func(t *testing.T) {
			tree, err := Read(
				Map{"server": map[string]any{"host": "alice", "port": 80}},
				Map{"server.host": "bob"},
			)
			if !assert.Nil(t, err) {
				return
			}

			expected := map[string]any{
				"server": map[string]any{
					"host": "bob",
					"port": 80,
				},
			}
			if !assert.Equal(t, expected, tree.Map()) {
				return
			}
		})
	})
}

func TestMap_Apply(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a key is reserved", func(t *testing.T) {
			err := Map{"__class__": 1}.Apply(settings.New())

			var rerr settings.ReservedNameError
			if !assert.ErrorAs(t, err, &rerr) {
				return
			}
		})
	})
}
