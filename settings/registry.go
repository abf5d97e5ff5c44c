// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"errors"

	"github.com/z5labs/metasetup/internal/try"

	"go.uber.org/zap"
)

// Option configures a Registry.
type Option func(*Registry)

// Logger configures the logger used by the Registry.
// By default, nothing is logged.
func Logger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.log = logger
	}
}

// Registry owns a global settings tree. Namespaces in the global tree are
// created on first access and shared by every holder, while local trees
// produced by the Registry are independent copies.
//
// A Registry performs no locking. Mutating the same namespace from multiple
// goroutines must be serialized by the caller, typically by restricting all
// global mutation to program startup.
type Registry struct {
	root *Tree
	log  *zap.Logger
}

// NewRegistry returns a Registry with an empty global tree.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		root: New(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process wide Registry.
func Default() *Registry {
	return defaultRegistry
}

// Root returns the root of the global tree.
func (r *Registry) Root() *Tree {
	return r.root
}

// Global returns the namespace at path in the global tree, creating it
// and any missing parents. The same path always returns the same *Tree.
func (r *Registry) Global(path string) (*Tree, error) {
	v, err := r.root.Get(path)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*Tree)
	if !ok {
		return nil, PathError{Path: path, Key: path}
	}
	return t, nil
}

// Localize returns an independent copy of t.
func (r *Registry) Localize(t *Tree) *Tree {
	return t.Localize()
}

// Local returns a localized copy of the global namespace at path. Paths
// which have never been populated yield an empty tree and are not created.
func (r *Registry) Local(path string) (*Tree, error) {
	v, err := r.root.Lookup(path)

	var nerr KeyNotFoundError
	if errors.As(err, &nerr) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	t, ok := v.(*Tree)
	if !ok {
		return nil, PathError{Path: path, Key: path}
	}
	return t.Localize(), nil
}

// Merge layers the given overrides on top of t.
func (r *Registry) Merge(t *Tree, overrides map[string]any) error {
	return t.MergeMap(overrides)
}

// Layer merges the local settings of each path into a single tree. Paths
// must be ordered from most general to most specific so later paths win.
func (r *Registry) Layer(paths ...string) (*Tree, error) {
	layered := New()
	for _, path := range paths {
		local, err := r.Local(path)
		if err != nil {
			return nil, err
		}
		layered.Merge(local)
	}
	r.log.Debug("layered settings", zap.Strings("paths", paths), zap.Int("keys", layered.Len()))
	return layered, nil
}

// Configure assigns every value in t, or only the given keys, onto target.
// Namespaces are applied recursively to the attribute of the same name,
// which must already exist on target.
func (r *Registry) Configure(t *Tree, target any, keys ...string) (err error) {
	defer try.Recover(&err)
	return r.configure(t, target, keys, "")
}

// ConfigureLayered layers the settings of paths and configures target with
// the result, which is returned.
func (r *Registry) ConfigureLayered(target any, paths []string, keys ...string) (*Tree, error) {
	t, err := r.Layer(paths...)
	if err != nil {
		return nil, err
	}
	err = r.Configure(t, target, keys...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Global calls [Registry.Global] on the [Default] Registry.
func Global(path string) (*Tree, error) {
	return defaultRegistry.Global(path)
}

// Local calls [Registry.Local] on the [Default] Registry.
func Local(path string) (*Tree, error) {
	return defaultRegistry.Local(path)
}

// Layer calls [Registry.Layer] on the [Default] Registry.
func Layer(paths ...string) (*Tree, error) {
	return defaultRegistry.Layer(paths...)
}

// Configure calls [Registry.Configure] on the [Default] Registry.
func Configure(t *Tree, target any, keys ...string) error {
	return defaultRegistry.Configure(t, target, keys...)
}

// ConfigureLayered calls [Registry.ConfigureLayered] on the [Default] Registry.
func ConfigureLayered(target any, paths []string, keys ...string) (*Tree, error) {
	return defaultRegistry.ConfigureLayered(target, paths, keys...)
}
