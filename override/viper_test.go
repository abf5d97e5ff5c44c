// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"testing"

	"github.com/z5labs/metasetup/settings"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViper_Apply(t *testing.T) {
	t.Run("will merge every known setting", func(t *testing.T) {
		t.Run("if defaults and overrides are both set", func(t *testing.T) {
			v := viper.New()
			v.SetDefault("server.host", "localhost")
			v.SetDefault("server.port", 80)
			v.Set("server.port", 8080)

			tree, err := settings.FromMap(map[string]any{"server.tls": false})
			require.Nil(t, err)

			err = FromViper(v).Apply(tree)
			if !assert.Nil(t, err) {
				return
			}

			expected := map[string]any{
				"server": map[string]any{
					"host": "localhost",
					"port": 8080,
					"tls":  false,
				},
			}
			if !assert.Equal(t, expected, tree.Map()) {
				return
			}
		})
	})
}
