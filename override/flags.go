// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"fmt"
	"strings"

	"github.com/z5labs/metasetup/settings"
	"github.com/z5labs/metasetup/settings/key"

	"github.com/spf13/pflag"
)

// MalformedPairError occurs when a settings flag value is not of the form key=value.
type MalformedPairError struct {
	Flag string
	Pair string
}

// Error implements the error interface.
func (e MalformedPairError) Error() string {
	return fmt.Sprintf("expected key=value for --%s: %q", e.Flag, e.Pair)
}

// Flags registers one command line flag per settings namespace. Every
// occurrence of a flag carries a key=value pair which is applied below
// the flags namespace, e.g. --server.http port=8080 sets server.http.port.
type Flags struct {
	fs    *pflag.FlagSet
	names []string
	pairs map[string]*[]string
}

// NewFlags returns Flags which registers its flags with fs.
func NewFlags(fs *pflag.FlagSet) *Flags {
	return &Flags{
		fs:    fs,
		pairs: make(map[string]*[]string),
	}
}

// Add registers a repeatable --name flag. Registering the same name twice is a no-op.
func (f *Flags) Add(name, usage string) error {
	if _, err := key.Parse(name); err != nil {
		return err
	}
	if _, ok := f.pairs[name]; ok {
		return nil
	}
	if usage == "" {
		usage = fmt.Sprintf("settings for %q as key=value", name)
	}

	pairs := new([]string)
	f.fs.StringArrayVar(pairs, name, nil, usage)
	f.pairs[name] = pairs
	f.names = append(f.names, name)
	return nil
}

// Names returns the registered namespaces in registration order.
func (f *Flags) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Apply implements the Source interface. It must be called after the
// underlying flag set has been parsed.
func (f *Flags) Apply(t *settings.Tree) error {
	for _, name := range f.names {
		for _, pair := range *f.pairs[name] {
			k, raw, ok := strings.Cut(pair, "=")
			if !ok || k == "" {
				return MalformedPairError{Flag: name, Pair: pair}
			}

			v, err := Literal(raw)
			if err != nil {
				return err
			}

			err = t.Set(key.Join(name, k), v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
