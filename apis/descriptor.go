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

package apis

import "strings"

// Key identifies a property on a Target.
type Key string

// symbolPrefix marks keys created by Symbol.
const symbolPrefix = "@@"

// Symbol returns the symbol-like key for name. Symbol keys are ordinary keys
// carrying a reserved prefix, so they never collide with plain string keys
// produced by user payloads unless the payload spells out the prefix.
func Symbol(name string) Key {
	return Key(symbolPrefix + name)
}

// IsSymbol reports whether k was produced by Symbol.
func (k Key) IsSymbol() bool {
	return strings.HasPrefix(string(k), symbolPrefix)
}

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// Kind classifies a Descriptor.
type Kind uint8

const (
	// KindNone is the classification of an absent descriptor.
	KindNone Kind = iota
	// KindData classifies a DataDescriptor.
	KindData
	// KindAccessor classifies an AccessorDescriptor.
	KindAccessor
)

// String returns a lower-case name for k.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindAccessor:
		return "accessor"
	default:
		return "none"
	}
}

// Getter reads an accessor property. self is the Target the property is read from.
type Getter func(self Target) any

// Setter writes an accessor property. self is the Target the property is written on.
type Setter func(self Target, v any)

// Descriptor is the closed union of DataDescriptor and AccessorDescriptor.
// The unexported marker keeps the union sealed to this package.
type Descriptor interface {
	// Kind returns KindData or KindAccessor.
	Kind() Kind
	// IsEnumerable reports whether the property shows up in enumeration.
	IsEnumerable() bool
	// IsConfigurable reports whether the property may be redefined or deleted.
	IsConfigurable() bool

	sealed()
}

// DataDescriptor describes a property holding a value.
type DataDescriptor struct {
	// Value is the property value.
	Value any
	// Writable controls whether plain assignment may replace Value.
	Writable bool
	// Enumerable controls enumeration visibility.
	Enumerable bool
	// Configurable controls redefinition and deletion.
	Configurable bool
}

// Kind implements Descriptor.
func (DataDescriptor) Kind() Kind { return KindData }

// IsEnumerable implements Descriptor.
func (d DataDescriptor) IsEnumerable() bool { return d.Enumerable }

// IsConfigurable implements Descriptor.
func (d DataDescriptor) IsConfigurable() bool { return d.Configurable }

func (DataDescriptor) sealed() {}

// AccessorDescriptor describes a property computed by a getter and/or setter.
type AccessorDescriptor struct {
	// Get reads the property. Nil means reads yield nil.
	Get Getter
	// Set writes the property. Nil means the property is read-only.
	Set Setter
	// Enumerable controls enumeration visibility.
	Enumerable bool
	// Configurable controls redefinition and deletion.
	Configurable bool
}

// Kind implements Descriptor.
func (AccessorDescriptor) Kind() Kind { return KindAccessor }

// IsEnumerable implements Descriptor.
func (d AccessorDescriptor) IsEnumerable() bool { return d.Enumerable }

// IsConfigurable implements Descriptor.
func (d AccessorDescriptor) IsConfigurable() bool { return d.Configurable }

func (AccessorDescriptor) sealed() {}

// Ensure both variants implement Descriptor.
var (
	_ Descriptor = DataDescriptor{}
	_ Descriptor = AccessorDescriptor{}
)
