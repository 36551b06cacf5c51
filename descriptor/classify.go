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
	"dirpx.dev/patchx/apis"
)

// Attribute names recognised in a Shape.
const (
	AttrGet          = "get"
	AttrSet          = "set"
	AttrValue        = "value"
	AttrWritable     = "writable"
	AttrEnumerable   = "enumerable"
	AttrConfigurable = "configurable"
)

// Shape is a loose, descriptor-shaped value keyed by attribute name.
type Shape map[string]any

var attrs = map[string]struct{}{
	AttrGet:          {},
	AttrSet:          {},
	AttrValue:        {},
	AttrWritable:     {},
	AttrEnumerable:   {},
	AttrConfigurable: {},
}

// IsData reports whether d classifies as a data descriptor.
func IsData(d any) bool {
	switch v := d.(type) {
	case apis.DataDescriptor:
		return true
	case *apis.DataDescriptor:
		return v != nil
	}
	s, ok := asShape(d)
	if !ok || !LooksLikeShape(s) {
		return false
	}
	return (s.has(AttrValue) || s.has(AttrWritable)) && !s.has(AttrGet) && !s.has(AttrSet)
}

// IsAccessor reports whether d classifies as an accessor descriptor.
func IsAccessor(d any) bool {
	switch v := d.(type) {
	case apis.AccessorDescriptor:
		return true
	case *apis.AccessorDescriptor:
		return v != nil
	}
	s, ok := asShape(d)
	if !ok || !LooksLikeShape(s) {
		return false
	}
	return (s.has(AttrGet) || s.has(AttrSet)) && !s.has(AttrValue) && !s.has(AttrWritable)
}

// IsDescriptor reports whether d is a well-formed descriptor: a typed
// descriptor, or a Shape whose keys are a non-empty subset of the attribute
// names that classifies as exactly one of data or accessor.
func IsDescriptor(d any) bool {
	// IsData and IsAccessor are mutually exclusive by construction.
	return IsData(d) || IsAccessor(d)
}

// LooksLikeShape reports whether d is a non-empty map whose keys are all
// attribute names, regardless of whether it classifies.
func LooksLikeShape(d any) bool {
	s, ok := asShape(d)
	if !ok || len(s) == 0 {
		return false
	}
	for k := range s {
		if _, ok := attrs[k]; !ok {
			return false
		}
	}
	return true
}

// KindOf returns the classification of d, KindNone when it is not a descriptor.
func KindOf(d any) apis.Kind {
	if !IsDescriptor(d) {
		return apis.KindNone
	}
	if IsData(d) {
		return apis.KindData
	}
	return apis.KindAccessor
}

func asShape(d any) (Shape, bool) {
	switch v := d.(type) {
	case Shape:
		return v, v != nil
	case map[string]any:
		return Shape(v), v != nil
	}
	return nil, false
}

func (s Shape) has(k string) bool {
	_, ok := s[k]
	return ok
}
