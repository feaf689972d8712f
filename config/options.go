// seehuhn.de/go/mapcolor - geometry and colouring state for map colouring
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Option declares a boolean toggle and its default value.
type Option struct {
	Key     string `yaml:"key"`
	Default bool   `yaml:"default"`
}

// Options holds the current values of a fixed set of toggles.
type Options struct {
	keys   []string
	values map[string]bool
}

// NewOptions builds the toggles declared by decl, in order.
// Duplicate or empty keys give an error.
func NewOptions(decl []Option) (*Options, error) {
	o := &Options{values: make(map[string]bool, len(decl))}
	for _, d := range decl {
		if d.Key == "" {
			return nil, errors.Wrap(ErrInvalid, "option with empty key")
		}
		if _, dup := o.values[d.Key]; dup {
			return nil, errors.Wrapf(ErrDuplicateOption, "%q", d.Key)
		}
		o.keys = append(o.keys, d.Key)
		o.values[d.Key] = d.Default
	}
	return o, nil
}

// Keys returns the option keys in declaration order.
func (o *Options) Keys() []string {
	return slices.Clone(o.keys)
}

// Get returns the value of an option. The second result is false for
// unknown keys.
func (o *Options) Get(key string) (value, ok bool) {
	value, ok = o.values[key]
	return value, ok
}

// Set changes the value of an existing option.
func (o *Options) Set(key string, value bool) error {
	if _, ok := o.values[key]; !ok {
		return errors.Newf("unknown option %q", key)
	}
	o.values[key] = value
	return nil
}
