// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/z5labs/metasetup/settings/key"

	"github.com/mitchellh/mapstructure"
)

// Tree is an ordered mapping from path segment to either a leaf value
// or a nested *Tree. Leaf values are opaque to the tree.
//
// The zero value is an empty, unnamed Tree ready for use.
type Tree struct {
	name    string
	keys    []string
	entries map[string]any
}

// New returns an empty, unnamed Tree.
func New() *Tree {
	return &Tree{
		entries: make(map[string]any),
	}
}

// FromMap builds a Tree from the given mapping. Keys may be dotted
// paths and nested map[string]any values become namespaces.
func FromMap(m map[string]any) (*Tree, error) {
	t := New()
	err := t.MergeMap(m)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the fully qualified name of the tree, if it has one.
func (t *Tree) Name() string {
	return t.name
}

// Len returns the number of direct entries in the tree.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the direct entry names of the tree in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Contains reports whether the path resolves to a value. It never
// fails; paths which traverse through a leaf simply aren't contained.
func (t *Tree) Contains(path string) bool {
	chain, err := key.Parse(path)
	if err != nil {
		return false
	}

	cur := t
	for i, k := range chain {
		v, ok := cur.entries[k.Key()]
		if !ok {
			return false
		}
		if i == len(chain)-1 {
			return true
		}
		sub, ok := v.(*Tree)
		if !ok {
			return false
		}
		cur = sub
	}
	return false
}

// Get returns the value at the given path. Missing namespaces along the
// path, including the last segment, are created as empty trees so that
// later writes below them succeed.
func (t *Tree) Get(path string) (any, error) {
	chain, err := key.Parse(path)
	if err != nil {
		return nil, err
	}
	return t.walk(chain, true)
}

// Lookup returns the value at the given path without creating any namespaces.
func (t *Tree) Lookup(path string) (any, error) {
	chain, err := key.Parse(path)
	if err != nil {
		return nil, err
	}
	return t.walk(chain, false)
}

// Set assigns the value at the given path, creating any missing parent namespaces.
func (t *Tree) Set(path string, v any) error {
	chain, err := key.Parse(path)
	if err != nil {
		return err
	}

	last := chain[len(chain)-1].(key.Name)
	if last.Reserved() {
		return ReservedNameError{Name: last.Key(), Path: chain.Key()}
	}

	parent, err := t.parent(chain, true)
	if err != nil {
		return err
	}
	parent.put(last.Key(), v)
	return nil
}

// Delete removes the value at the given path.
func (t *Tree) Delete(path string) error {
	chain, err := key.Parse(path)
	if err != nil {
		return err
	}

	parent, err := t.parent(chain, false)
	if err != nil {
		return err
	}

	last := chain[len(chain)-1].Key()
	if key.IsReserved(last) {
		return ReservedNameError{Name: last, Path: chain.Key()}
	}
	if _, ok := parent.entries[last]; !ok {
		return KeyNotFoundError{Path: chain.Key()}
	}
	parent.remove(last)
	return nil
}

// Merge recursively merges other into t. Where both trees hold a namespace
// under the same name they are merged, otherwise the value from other wins.
// Namespaces copied from other are localized so t never shares structure with it.
func (t *Tree) Merge(other *Tree) {
	if other == nil || other == t {
		return
	}

	for _, name := range other.keys {
		v := other.entries[name]
		src, srcIsTree := v.(*Tree)
		dst, dstIsTree := t.entries[name].(*Tree)
		switch {
		case srcIsTree && dstIsTree:
			dst.Merge(src)
		case srcIsTree:
			t.put(name, src.copyAs(t.qualify(name)))
		default:
			t.put(name, v)
		}
	}
}

// MergeMap merges an override mapping into t with the same semantics as [Tree.Merge].
// Keys may be dotted paths and are applied in lexical order. Nested
// map[string]any values are treated as namespaces.
func (t *Tree) MergeMap(m map[string]any) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := m[name]
		if sub, ok := v.(map[string]any); ok {
			subTree, err := FromMap(sub)
			if err != nil {
				return err
			}
			v = subTree
		}

		src, ok := v.(*Tree)
		if !ok {
			err := t.Set(name, v)
			if err != nil {
				return err
			}
			continue
		}

		cur, err := t.Get(name)
		if err != nil {
			return err
		}
		if dst, ok := cur.(*Tree); ok {
			dst.Merge(src)
			continue
		}
		err = t.Set(name, src.Localize())
		if err != nil {
			return err
		}
	}
	return nil
}

// Localize returns an independent copy of t. Every namespace is copied
// into a fresh Tree while leaf values are shared by reference.
func (t *Tree) Localize() *Tree {
	return t.copyAs("")
}

// Map exports the tree as nested map[string]any values.
func (t *Tree) Map() map[string]any {
	m := make(map[string]any, len(t.keys))
	for _, name := range t.keys {
		v := t.entries[name]
		if sub, ok := v.(*Tree); ok {
			v = sub.Map()
		}
		m[name] = v
	}
	return m
}

// Decode copies the tree into v, which must be a pointer to a struct or map.
// Struct fields are matched by their "setting" tag or, case-insensitively, by name.
// No type coercion is performed.
func (t *Tree) Decode(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "setting",
		Result:     v,
		DecodeHook: mapstructure.DecodeHookFuncType(strictScalars),
	})
	if err != nil {
		return err
	}
	return dec.Decode(t.Map())
}

// strictScalars rejects scalar values whose kind differs from the target's
// unless they are directly assignable, e.g. float64 into int.
func strictScalars(from, to reflect.Type, data any) (any, error) {
	if !isScalar(from.Kind()) || !isScalar(to.Kind()) {
		return data, nil
	}
	if from.Kind() == to.Kind() || from.AssignableTo(to) {
		return data, nil
	}
	return nil, ValueTypeError{Want: to.String(), Got: from.String()}
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// String implements the fmt.Stringer interface.
func (t *Tree) String() string {
	name := t.name
	if name == "" {
		name = "Tree"
	}
	return fmt.Sprintf("%s(%v)", name, t.Map())
}

func (t *Tree) walk(chain key.Chain, vivify bool) (any, error) {
	var cur any = t
	for i, k := range chain {
		node, ok := cur.(*Tree)
		if !ok {
			return nil, PathError{Path: chain[:i].Key(), Key: chain.Key()}
		}

		name := k.Key()
		if n, ok := k.(key.Name); ok && n.Reserved() {
			return nil, ReservedNameError{Name: name, Path: chain.Key()}
		}

		v, ok := node.entries[name]
		if ok {
			cur = v
			continue
		}
		if !vivify {
			return nil, KeyNotFoundError{Path: chain[:i+1].Key()}
		}

		sub := &Tree{name: node.qualify(name)}
		node.put(name, sub)
		cur = sub
	}
	return cur, nil
}

func (t *Tree) parent(chain key.Chain, vivify bool) (*Tree, error) {
	if len(chain) == 1 {
		return t, nil
	}

	v, err := t.walk(chain[:len(chain)-1], vivify)
	if err != nil {
		return nil, err
	}
	parent, ok := v.(*Tree)
	if !ok {
		return nil, PathError{Path: chain[:len(chain)-1].Key(), Key: chain.Key()}
	}
	return parent, nil
}

func (t *Tree) copyAs(name string) *Tree {
	local := &Tree{
		name:    name,
		keys:    make([]string, 0, len(t.keys)),
		entries: make(map[string]any, len(t.keys)),
	}
	for _, k := range t.keys {
		v := t.entries[k]
		if sub, ok := v.(*Tree); ok {
			v = sub.copyAs(local.qualify(k))
		}
		local.put(k, v)
	}
	return local
}

func (t *Tree) qualify(name string) string {
	return key.Join(t.name, name)
}

func (t *Tree) put(name string, v any) {
	if t.entries == nil {
		t.entries = make(map[string]any)
	}
	if _, ok := t.entries[name]; !ok {
		t.keys = append(t.keys, name)
	}
	if sub, ok := v.(*Tree); ok && sub.name == "" {
		sub.name = t.qualify(name)
	}
	t.entries[name] = v
}

func (t *Tree) remove(name string) {
	delete(t.entries, name)
	for i, k := range t.keys {
		if k == name {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			return
		}
	}
}
