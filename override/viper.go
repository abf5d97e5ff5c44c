// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"github.com/z5labs/metasetup/settings"

	"github.com/spf13/viper"
)

// Viper represents a Source backed by an already populated *viper.Viper.
type Viper struct {
	v *viper.Viper
}

// FromViper returns a Source which will apply every setting known to v.
// Viper lower cases keys, so settings should be named accordingly.
func FromViper(v *viper.Viper) Viper {
	return Viper{v: v}
}

// Apply implements the Source interface.
func (src Viper) Apply(t *settings.Tree) error {
	return t.MergeMap(src.v.AllSettings())
}
