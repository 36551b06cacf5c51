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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilValue is returned when a nil value (or typed nil) is provided.
	ErrReflectNilValue = errors.New("reflect: nil value provided")
	// ErrReflectNotReference is returned when a value is not a reference kind.
	ErrReflectNotReference = errors.New("reflect: value is not a reference")
)

// Ref is the identity of a reference value: its dynamic type plus the address
// it points at. Ref is comparable and usable as a map key even when the
// underlying value (a map or a func) is not.
//
// Two distinct pointers to zero-sized values may share an address and thus a
// Ref; owners are expected to carry state.
type Ref struct {
	typ reflect.Type
	ptr uintptr
}

// Type returns the dynamic type the Ref was taken from.
func (r Ref) Type() reflect.Type { return r.typ }

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool { return r.typ == nil && r.ptr == 0 }

// IsReference reports whether v is a non-nil pointer, map, func, chan or
// unsafe pointer.
func IsReference(v any) bool {
	_, err := Identity(v)
	return err == nil
}

// Identity returns the Ref of v.
//
// Reference kinds:
//   - ptr/map/chan/func/unsafe.Pointer -> identity is the pointed-to address
//   - anything else (including slices, whose header is copied) -> ErrReflectNotReference
//
// A nil interface or a typed nil yields ErrReflectNilValue.
func Identity(v any) (Ref, error) {
	if v == nil {
		return Ref{}, ErrReflectNilValue
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return Ref{}, ErrReflectNilValue
		}
		return Ref{typ: rv.Type(), ptr: rv.Pointer()}, nil
	default:
		return Ref{}, ErrReflectNotReference
	}
}
