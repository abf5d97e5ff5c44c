// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package override provides sources of setting overrides which are
// layered on top of the defaults held in a settings tree.
package override

import (
	"github.com/z5labs/metasetup/settings"
)

// Source defines valid override sources as those who can
// apply themselves onto a settings tree.
type Source interface {
	Apply(*settings.Tree) error
}

// SourceFunc is a functional implementation of the Source interface.
type SourceFunc func(*settings.Tree) error

// Apply implements the Source interface.
func (f SourceFunc) Apply(t *settings.Tree) error {
	return f(t)
}

// Apply applies each source onto t. Subsequent sources override previous sources.
func Apply(t *settings.Tree, srcs ...Source) error {
	for _, src := range srcs {
		err := src.Apply(t)
		if err != nil {
			return err
		}
	}
	return nil
}

// Read applies every source onto a new, empty tree.
func Read(srcs ...Source) (*settings.Tree, error) {
	t := settings.New()
	err := Apply(t, srcs...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Map is an ordinary map[string]any but implements the Source interface.
// Keys may be dotted paths and values are expected to already be typed.
type Map map[string]any

// Apply implements the Source interface.
func (m Map) Apply(t *settings.Tree) error {
	return t.MergeMap(m)
}
