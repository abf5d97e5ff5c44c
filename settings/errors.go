// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import "fmt"

// PathError occurs when a dotted path traverses through a leaf value.
type PathError struct {
	// Path is the prefix of Key which resolved to a leaf instead of a namespace.
	Path string
	Key  string
}

// Error implements the error interface.
func (e PathError) Error() string {
	return fmt.Sprintf("setting %s is not a namespace while resolving: %s", e.Path, e.Key)
}

// KeyNotFoundError occurs when deleting, or strictly looking up, an absent key.
type KeyNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("setting not found: %s", e.Path)
}

// ReservedNameError occurs when a name wrapped in underscores is used as a path segment.
type ReservedNameError struct {
	Name string
	Path string
}

// Error implements the error interface.
func (e ReservedNameError) Error() string {
	return fmt.Sprintf("reserved name %q can not be used as a setting: %s", e.Name, e.Path)
}

// TargetAttributeMissingError occurs when configure can not find the
// attribute on a target which a setting should be applied to.
type TargetAttributeMissingError struct {
	Path   string
	Attr   string
	Target string
}

// Error implements the error interface.
func (e TargetAttributeMissingError) Error() string {
	return fmt.Sprintf("target %s has no attribute %q for setting: %s", e.Target, e.Attr, e.Path)
}

// FieldTypeError occurs when a leaf value can not be assigned to the struct field it targets.
type FieldTypeError struct {
	Path  string
	Field string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e FieldTypeError) Error() string {
	return fmt.Sprintf("can not assign %s to field %s of type %s for setting: %s", e.Got, e.Field, e.Want, e.Path)
}

// ValueTypeError occurs when [Tree.Decode] meets a value whose type
// can not be stored in its destination without conversion.
type ValueTypeError struct {
	Want string
	Got  string
}

// Error implements the error interface.
func (e ValueTypeError) Error() string {
	return fmt.Sprintf("can not decode %s into %s", e.Got, e.Want)
}

// UnsupportedTargetError occurs when configure is given a target it
// has no way of assigning attributes on.
type UnsupportedTargetError struct {
	Path   string
	Target string
}

// Error implements the error interface.
func (e UnsupportedTargetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported configure target: %s", e.Target)
	}
	return fmt.Sprintf("unsupported configure target %s for setting: %s", e.Target, e.Path)
}
