// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/z5labs/metasetup/settings/key"

	"go.uber.org/zap"
)

// Target is implemented by values which assign settings onto themselves.
type Target interface {
	// Attr returns the nested value a namespace named name is applied to.
	Attr(name string) (any, bool)

	// SetAttr assigns a leaf value.
	SetAttr(name string, value any) error
}

func (r *Registry) configure(t *Tree, target any, keys []string, prefix string) error {
	if len(keys) == 0 {
		keys = t.Keys()
	}

	for _, name := range keys {
		v, err := t.Lookup(name)
		if err != nil {
			return err
		}

		path := key.Join(prefix, name)
		sub, ok := v.(*Tree)
		if !ok {
			err = assign(target, name, v, path)
			if err != nil {
				return err
			}
			r.log.Debug("configured setting", zap.String("setting", path), zap.String("target", typeName(target)))
			continue
		}

		attr, ok := attribute(target, name)
		if !ok {
			return TargetAttributeMissingError{
				Path:   path,
				Attr:   name,
				Target: typeName(target),
			}
		}
		err = r.configure(sub, attr, nil, path)
		if err != nil {
			return err
		}
	}
	return nil
}

func attribute(target any, name string) (any, bool) {
	switch x := target.(type) {
	case Target:
		return x.Attr(name)
	case map[string]any:
		v, ok := x[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}

	sv, ok := structOf(target)
	if !ok {
		return nil, false
	}
	f, ok := field(sv, name)
	if !ok {
		return nil, false
	}

	switch f.Kind() {
	case reflect.Struct:
		return f.Addr().Interface(), true
	case reflect.Pointer, reflect.Interface, reflect.Map:
		if f.IsNil() {
			return nil, false
		}
		return f.Interface(), true
	default:
		return f.Interface(), true
	}
}

func assign(target any, name string, v any, path string) error {
	switch x := target.(type) {
	case Target:
		return x.SetAttr(name, v)
	case map[string]any:
		if x == nil {
			return UnsupportedTargetError{Path: path, Target: typeName(target)}
		}
		x[name] = v
		return nil
	}

	sv, ok := structOf(target)
	if !ok {
		return UnsupportedTargetError{Path: path, Target: typeName(target)}
	}
	f, ok := field(sv, name)
	if !ok {
		return TargetAttributeMissingError{
			Path:   path,
			Attr:   name,
			Target: typeName(target),
		}
	}

	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(f.Type()):
		f.Set(rv)
	case rv.Kind() == f.Kind() && rv.Type().ConvertibleTo(f.Type()):
		f.Set(rv.Convert(f.Type()))
	default:
		return FieldTypeError{
			Path:  path,
			Field: name,
			Want:  f.Type().String(),
			Got:   rv.Type().String(),
		}
	}
	return nil
}

// structOf dereferences target down to an addressable struct.
func structOf(target any) (reflect.Value, bool) {
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || !rv.CanAddr() {
		return reflect.Value{}, false
	}
	return rv, true
}

// field finds the exported field for name by, in order, its "setting" tag,
// its exact name and its name ignoring case. Fields promoted from embedded
// structs are included; those behind a nil embedded pointer are not reachable.
func field(sv reflect.Value, name string) (reflect.Value, bool) {
	var exact, folded []int
	for _, sf := range reflect.VisibleFields(sv.Type()) {
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("setting"), ",")
		switch {
		case tag == "-":
		case tag == name:
			return fieldByIndex(sv, sf.Index)
		case tag != "":
		case exact == nil && sf.Name == name:
			exact = sf.Index
		case folded == nil && strings.EqualFold(sf.Name, name):
			folded = sf.Index
		}
	}

	switch {
	case exact != nil:
		return fieldByIndex(sv, exact)
	case folded != nil:
		return fieldByIndex(sv, folded)
	default:
		return reflect.Value{}, false
	}
}

func fieldByIndex(sv reflect.Value, index []int) (reflect.Value, bool) {
	f, err := sv.FieldByIndexErr(index)
	if err != nil || !f.CanSet() {
		return reflect.Value{}, false
	}
	return f, true
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
