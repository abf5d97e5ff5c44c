// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package override

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LiteralError occurs if a raw override value is not a valid literal.
type LiteralError struct {
	Value string
	Cause error
}

// Error implements the error interface.
func (e LiteralError) Error() string {
	return fmt.Sprintf("invalid literal %q: %s", e.Value, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e LiteralError) Unwrap() error {
	return e.Cause
}

// Literal evaluates a raw command line or environment value as a YAML
// flow literal. Numbers, booleans, lists and mappings are typed accordingly
// and anything else is returned as a string.
func Literal(s string) (any, error) {
	var v any
	err := yaml.Unmarshal([]byte(s), &v)
	if err != nil {
		return nil, LiteralError{Value: s, Cause: err}
	}
	return v, nil
}
