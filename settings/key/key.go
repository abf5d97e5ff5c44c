// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for addressing values in a settings tree by dotted path.
package key

import (
	"fmt"
	"strings"
)

// Separator joins the segments of a path.
const Separator = "."

// Keyer is a common interface all path key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range len(k) {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, Separator)
}

// Name represents a single path segment.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Reserved reports whether the name is wrapped in underscores, e.g. "__internal__".
// Reserved names are never addressable settings.
func (k Name) Reserved() bool {
	return IsReserved(string(k))
}

// IsReserved reports whether s starts and ends with an underscore.
func IsReserved(s string) bool {
	return strings.HasPrefix(s, "_") && strings.HasSuffix(s, "_")
}

// EmptySegmentError occurs when a path, or one of its segments, is empty.
type EmptySegmentError struct {
	Path string
}

// Error implements the error interface.
func (e EmptySegmentError) Error() string {
	return fmt.Sprintf("path contains an empty segment: %q", e.Path)
}

// Parse splits a dotted path into a Chain of Names.
func Parse(path string) (Chain, error) {
	if path == "" {
		return nil, EmptySegmentError{Path: path}
	}

	parts := strings.Split(path, Separator)
	chain := make(Chain, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, EmptySegmentError{Path: path}
		}
		chain[i] = Name(part)
	}
	return chain, nil
}

// Join concatenates dotted paths, skipping empty ones.
func Join(paths ...string) string {
	ss := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		ss = append(ss, p)
	}
	return strings.Join(ss, Separator)
}
