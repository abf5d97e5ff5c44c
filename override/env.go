// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"os"
	"sort"
	"strings"

	"github.com/z5labs/metasetup/settings"
)

// EnvSeparator separates path segments in environment variable names.
const EnvSeparator = "__"

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply the environment variables
// starting with prefix. The rest of the variable name is the setting path
// with [EnvSeparator] between segments, e.g. APP_server__port=8080 with
// the prefix "APP_" sets server.port. An empty prefix matches nothing.
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface. Variables are applied in lexical order.
func (src Env) Apply(t *settings.Tree) error {
	if src.prefix == "" {
		return nil
	}

	env := src.environ()
	sort.Strings(env)
	for _, pair := range env {
		k, raw, ok := strings.Cut(pair, "=")
		if !ok || !strings.HasPrefix(k, src.prefix) {
			continue
		}

		path := strings.ReplaceAll(strings.TrimPrefix(k, src.prefix), EnvSeparator, ".")
		if path == "" {
			continue
		}

		v, err := Literal(raw)
		if err != nil {
			return err
		}
		err = t.Set(path, v)
		if err != nil {
			return err
		}
	}
	return nil
}
