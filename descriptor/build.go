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

package descriptor

import (
	"fmt"
	"reflect"

	"dirpx.dev/patchx/apis"
	uref "dirpx.dev/patchx/utils/reflect"
)

// Option tunes the flags of a built descriptor.
type Option func(*flags)

type flags struct {
	writable     bool
	enumerable   bool
	configurable bool
}

func newFlags(opts []Option) flags {
	f := flags{writable: true, enumerable: true, configurable: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// WithWritable sets Writable on data descriptors. Ignored for accessors.
func WithWritable(writable bool) Option {
	return func(f *flags) { f.writable = writable }
}

// WithEnumerable sets Enumerable.
func WithEnumerable(enumerable bool) Option {
	return func(f *flags) { f.enumerable = enumerable }
}

// WithConfigurable sets Configurable.
func WithConfigurable(configurable bool) Option {
	return func(f *flags) { f.configurable = configurable }
}

// FromConfig applies the descriptor defaults carried by cfg.
func FromConfig(cfg apis.Config) Option {
	return func(f *flags) {
		f.writable = cfg.Writable
		f.enumerable = cfg.Enumerable
		f.configurable = cfg.Configurable
	}
}

// BuildData returns a data descriptor for value.
// Writable, Enumerable and Configurable default to true.
func BuildData(value any, opts ...Option) apis.DataDescriptor {
	f := newFlags(opts)
	return apis.DataDescriptor{
		Value:        value,
		Writable:     f.writable,
		Enumerable:   f.enumerable,
		Configurable: f.configurable,
	}
}

// BuildAccessor returns an accessor descriptor from getter and setter.
// Each may be nil, an apis.Getter/apis.Setter, or one of the plain func shapes
// accepted by utils/reflect.AsGetter/AsSetter. At least one must be callable;
// a non-nil value that is not callable is rejected.
// Enumerable and Configurable default to true.
func BuildAccessor(getter, setter any, opts ...Option) (apis.AccessorDescriptor, error) {
	g, gok := uref.AsGetter(getter)
	s, sok := uref.AsSetter(setter)
	if !gok && !absent(getter) {
		return apis.AccessorDescriptor{}, &apis.DescriptorError{Reason: fmt.Sprintf("getter of type %T is not callable", getter)}
	}
	if !sok && !absent(setter) {
		return apis.AccessorDescriptor{}, &apis.DescriptorError{Reason: fmt.Sprintf("setter of type %T is not callable", setter)}
	}
	if !gok && !sok {
		return apis.AccessorDescriptor{}, &apis.DescriptorError{Reason: "accessor needs a getter or a setter"}
	}
	f := newFlags(opts)
	return apis.AccessorDescriptor{
		Get:          g,
		Set:          s,
		Enumerable:   f.enumerable,
		Configurable: f.configurable,
	}, nil
}

// FromShape converts a descriptor-shaped map into a typed descriptor.
// Flags missing from the shape take their defaults from cfg.
func FromShape(key apis.Key, shape any, cfg apis.Config) (apis.Descriptor, error) {
	s, ok := asShape(shape)
	if !ok || !IsDescriptor(s) {
		return nil, &apis.DescriptorError{Key: key, Reason: "value is not a descriptor shape"}
	}

	opts := []Option{FromConfig(cfg)}
	for _, attr := range []string{AttrWritable, AttrEnumerable, AttrConfigurable} {
		raw, ok := s[attr]
		if !ok {
			continue
		}
		b, ok := raw.(bool)
		if !ok {
			return nil, &apis.DescriptorError{Key: key, Reason: fmt.Sprintf("%s must be a bool, got %T", attr, raw)}
		}
		switch attr {
		case AttrWritable:
			opts = append(opts, WithWritable(b))
		case AttrEnumerable:
			opts = append(opts, WithEnumerable(b))
		case AttrConfigurable:
			opts = append(opts, WithConfigurable(b))
		}
	}

	if IsData(s) {
		return BuildData(s[AttrValue], opts...), nil
	}
	d, err := BuildAccessor(s[AttrGet], s[AttrSet], opts...)
	if de, ok := err.(*apis.DescriptorError); ok {
		return nil, &apis.DescriptorError{Key: key, Reason: de.Reason}
	}
	return d, err
}

// Deref returns the typed descriptor held by d, dereferencing pointers to
// DataDescriptor and AccessorDescriptor. It reports false for anything else.
func Deref(d any) (apis.Descriptor, bool) {
	switch v := d.(type) {
	case apis.DataDescriptor:
		return v, true
	case apis.AccessorDescriptor:
		return v, true
	case *apis.DataDescriptor:
		if v != nil {
			return *v, true
		}
	case *apis.AccessorDescriptor:
		if v != nil {
			return *v, true
		}
	}
	return nil, false
}

// Validate checks that d is installable as a payload descriptor.
func Validate(key apis.Key, d apis.Descriptor) error {
	if d == nil {
		return &apis.DescriptorError{Key: key, Reason: "nil descriptor"}
	}
	if a, ok := d.(apis.AccessorDescriptor); ok && a.Get == nil && a.Set == nil {
		return &apis.DescriptorError{Key: key, Reason: "accessor needs a getter or a setter"}
	}
	return nil
}

// Equal reports whether a and b describe the same property. Values are
// compared with reflect.DeepEqual, funcs (values, getters, setters) by identity.
func Equal(a, b apis.Descriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case apis.DataDescriptor:
		y, ok := b.(apis.DataDescriptor)
		return ok &&
			x.Writable == y.Writable &&
			x.Enumerable == y.Enumerable &&
			x.Configurable == y.Configurable &&
			uref.ValueEqual(x.Value, y.Value)
	case apis.AccessorDescriptor:
		y, ok := b.(apis.AccessorDescriptor)
		return ok &&
			x.Enumerable == y.Enumerable &&
			x.Configurable == y.Configurable &&
			uref.FuncEqual(x.Get, y.Get) &&
			uref.FuncEqual(x.Set, y.Set)
	}
	return false
}

// absent reports whether v is nil or a nil func.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && rv.IsNil()
}
