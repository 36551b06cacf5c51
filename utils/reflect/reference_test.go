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
	"errors"
	"testing"
	"unsafe"

	uref "dirpx.dev/patchx/utils/reflect"
)

// Local test types.
type A struct{ n int }
type B struct{ n int }

func TestIdentity_ReferenceKinds(t *testing.T) {
	x := 1
	cases := []struct {
		name string
		v    any
	}{
		{"ptr", &A{}},
		{"map", map[string]any{}},
		{"chan", make(chan int)},
		{"func", func() {}},
		{"unsafe", unsafe.Pointer(&x)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := uref.Identity(tc.v)
			if err != nil {
				t.Fatalf("Identity(%s): unexpected error: %v", tc.name, err)
			}
			if r.IsZero() {
				t.Fatalf("Identity(%s): got zero Ref", tc.name)
			}
			if !uref.IsReference(tc.v) {
				t.Fatalf("IsReference(%s) = false, want true", tc.name)
			}
		})
	}
}

func TestIdentity_Errors(t *testing.T) {
	var nilPtr *A
	var nilMap map[string]any

	cases := []struct {
		name string
		v    any
		want error
	}{
		{"nil", nil, uref.ErrReflectNilValue},
		{"typed nil ptr", nilPtr, uref.ErrReflectNilValue},
		{"typed nil map", nilMap, uref.ErrReflectNilValue},
		{"struct", A{}, uref.ErrReflectNotReference},
		{"int", 42, uref.ErrReflectNotReference},
		{"slice", []int{1}, uref.ErrReflectNotReference},
		{"string", "s", uref.ErrReflectNotReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uref.Identity(tc.v)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Identity(%s): got %v, want %v", tc.name, err, tc.want)
			}
			if uref.IsReference(tc.v) {
				t.Fatalf("IsReference(%s) = true, want false", tc.name)
			}
		})
	}
}

func TestIdentity_StableAndDistinct(t *testing.T) {
	a1, a2 := &A{n: 1}, &A{n: 2}
	m := map[string]any{"k": 1}

	r1, _ := uref.Identity(a1)
	r1b, _ := uref.Identity(a1)
	r2, _ := uref.Identity(a2)
	rm1, _ := uref.Identity(m)
	rm2, _ := uref.Identity(m)

	if r1 != r1b {
		t.Fatalf("Identity not stable for the same pointer")
	}
	if r1 == r2 {
		t.Fatalf("Identity equal for distinct pointers")
	}
	if rm1 != rm2 {
		t.Fatalf("Identity not stable for the same map")
	}

	// Same address, different type: a pointer to the first field of a struct.
	b := &B{}
	rb, _ := uref.Identity(b)
	rn, _ := uref.Identity(&b.n)
	if rb == rn {
		t.Fatalf("Identity equal across types sharing an address")
	}
}
