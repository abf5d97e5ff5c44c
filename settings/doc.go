// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package settings provides a hierarchical registry of named values
// addressed by dotted paths, e.g. "server.http.port".
//
// # Trees
//
// A [Tree] is an ordered mapping from path segment to either a leaf value
// or a nested [Tree]. Reading a path which has never been set never fails;
// instead an empty namespace is created, so later writes below it succeed.
// Names wrapped in underscores, e.g. "__internal__", are reserved and can
// not be used as path segments.
//
// # Global and local settings
//
// A [Registry] owns a global tree. [Registry.Global] returns the same *Tree for
// the same path every time, so mutations are visible to every holder. A local
// tree, see [Registry.Local], is an independent copy which can be freely merged
// with overrides without affecting the global tree.
//
// # Configure
//
// [Registry.Configure] projects a tree onto a target: leaves are assigned to
// the like named struct field, map entry or [Target] attribute, while
// namespaces are applied recursively to the attribute of the same name, which
// must already exist. Layering settings for a component and its ancestors is
// done by passing their paths, most general first, to [Registry.Layer] or
// [Registry.ConfigureLayered].
//
// # Concurrency
//
// Nothing in this package locks. Callers must serialize mutation of any given
// namespace, typically by only mutating the global tree during startup.
package settings
