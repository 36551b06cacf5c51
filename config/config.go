/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/patchx/apis"
)

const (
	// DefaultEnumerable represents the default for Enumerable.
	DefaultEnumerable = true
	// DefaultConfigurable represents the default for Configurable.
	// Patched properties must stay configurable for Revert to restore them.
	DefaultConfigurable = true
	// DefaultWritable represents the default for Writable.
	DefaultWritable = true
	// DefaultStrictShapes represents the default for StrictShapes.
	DefaultStrictShapes = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Enumerable:   DefaultEnumerable,
		Configurable: DefaultConfigurable,
		Writable:     DefaultWritable,
		StrictShapes: DefaultStrictShapes,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithEnumerable sets the Enumerable option.
func WithEnumerable(enumerable bool) Option {
	return func(c *apis.Config) {
		c.Enumerable = enumerable
	}
}

// WithConfigurable sets the Configurable option.
func WithConfigurable(configurable bool) Option {
	return func(c *apis.Config) {
		c.Configurable = configurable
	}
}

// WithWritable sets the Writable option.
func WithWritable(writable bool) Option {
	return func(c *apis.Config) {
		c.Writable = writable
	}
}

// WithStrictShapes sets the StrictShapes option.
func WithStrictShapes(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictShapes = strict
	}
}
