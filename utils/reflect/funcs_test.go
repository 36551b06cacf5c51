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

package reflect_test

import (
	"testing"

	"dirpx.dev/patchx/apis"
	uref "dirpx.dev/patchx/utils/reflect"
)

func TestAsGetter(t *testing.T) {
	var nilGetter apis.Getter
	var nilPlain func() any

	cases := []struct {
		name string
		v    any
		ok   bool
		want any
	}{
		{"apis.Getter", apis.Getter(func(apis.Target) any { return 1 }), true, 1},
		{"func(Target) any", func(apis.Target) any { return 2 }, true, 2},
		{"func() any", func() any { return 3 }, true, 3},
		{"nil getter", nilGetter, false, nil},
		{"nil plain", nilPlain, false, nil},
		{"wrong signature", func() string { return "x" }, false, nil},
		{"not a func", 7, false, nil},
		{"nil", nil, false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, ok := uref.AsGetter(tc.v)
			if ok != tc.ok {
				t.Fatalf("AsGetter(%s): ok = %v, want %v", tc.name, ok, tc.ok)
			}
			if ok {
				if got := g(nil); got != tc.want {
					t.Fatalf("AsGetter(%s)(): got %v, want %v", tc.name, got, tc.want)
				}
			}
		})
	}
}

func TestAsSetter(t *testing.T) {
	var got any
	cases := []struct {
		name string
		v    any
		ok   bool
	}{
		{"apis.Setter", apis.Setter(func(_ apis.Target, x any) { got = x }), true},
		{"func(Target, any)", func(_ apis.Target, x any) { got = x }, true},
		{"func(any)", func(x any) { got = x }, true},
		{"wrong signature", func(string) {}, false},
		{"nil", nil, false},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got = nil
			s, ok := uref.AsSetter(tc.v)
			if ok != tc.ok {
				t.Fatalf("AsSetter(%s): ok = %v, want %v", tc.name, ok, tc.ok)
			}
			if ok {
				s(nil, i)
				if got != i {
					t.Fatalf("AsSetter(%s): setter stored %v, want %v", tc.name, got, i)
				}
			}
		})
	}
}

func TestFuncEqualAndValueEqual(t *testing.T) {
	f := func() int { return 1 }
	g := func() int { return 2 }
	var nilF func() int

	if !uref.FuncEqual(f, f) {
		t.Fatalf("FuncEqual(f, f) = false, want true")
	}
	if uref.FuncEqual(f, g) {
		t.Fatalf("FuncEqual(f, g) = true, want false")
	}
	if !uref.FuncEqual(nilF, nilF) {
		t.Fatalf("FuncEqual(nil, nil) = false, want true")
	}
	if uref.FuncEqual(f, 1) {
		t.Fatalf("FuncEqual(f, 1) = true, want false")
	}
	if !uref.FuncEqual(nil, nil) {
		t.Fatalf("FuncEqual(untyped nil, untyped nil) = false, want true")
	}

	if !uref.ValueEqual([]int{1, 2}, []int{1, 2}) {
		t.Fatalf("ValueEqual(slices) = false, want true")
	}
	if !uref.ValueEqual(f, f) {
		t.Fatalf("ValueEqual(f, f) = false, want true")
	}
	if uref.ValueEqual(f, nil) {
		t.Fatalf("ValueEqual(f, nil) = true, want false")
	}
	if !uref.IsFunc(f) || uref.IsFunc(nilF) || uref.IsFunc(1) {
		t.Fatalf("IsFunc misclassified a value")
	}
}
