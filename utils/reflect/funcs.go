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
	"reflect"

	"dirpx.dev/patchx/apis"
)

// AsGetter adapts v to an apis.Getter.
//
// Accepted shapes:
//   - apis.Getter / func(apis.Target) any
//   - func() any
//
// Anything else, including a nil func, is reported as not callable.
func AsGetter(v any) (apis.Getter, bool) {
	switch f := v.(type) {
	case apis.Getter:
		return f, f != nil
	case func(apis.Target) any:
		return f, f != nil
	case func() any:
		if f == nil {
			return nil, false
		}
		return func(apis.Target) any { return f() }, true
	}
	return nil, false
}

// AsSetter adapts v to an apis.Setter.
//
// Accepted shapes:
//   - apis.Setter / func(apis.Target, any)
//   - func(any)
func AsSetter(v any) (apis.Setter, bool) {
	switch f := v.(type) {
	case apis.Setter:
		return f, f != nil
	case func(apis.Target, any):
		return f, f != nil
	case func(any):
		if f == nil {
			return nil, false
		}
		return func(_ apis.Target, x any) { f(x) }, true
	}
	return nil, false
}

// IsFunc reports whether v is a non-nil func of any signature.
func IsFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// FuncEqual reports whether a and b are the same func value.
// Go funcs are not comparable; code pointers are compared instead, so two
// closures over different variables built from the same literal compare equal.
func FuncEqual(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if ra.Kind() != reflect.Func || rb.Kind() != reflect.Func {
		return false
	}
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.IsNil() || rb.IsNil() {
		return ra.IsNil() && rb.IsNil()
	}
	return ra.Pointer() == rb.Pointer()
}

// ValueEqual is reflect.DeepEqual with FuncEqual semantics for top-level funcs.
func ValueEqual(a, b any) bool {
	if IsFunc(a) || IsFunc(b) {
		return FuncEqual(a, b)
	}
	return reflect.DeepEqual(a, b)
}
