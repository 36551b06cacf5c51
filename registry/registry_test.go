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

package registry_test

import (
	"errors"
	"testing"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/registry"
	"dirpx.dev/patchx/target"
)

// fakePatch records Apply/Revert calls and can be told to fail.
type fakePatch struct {
	owner   apis.Target
	applied bool
	fail    error
	log     *[]string
	name    string
}

func (f *fakePatch) Owner() apis.Target { return f.owner }
func (f *fakePatch) Applied() bool      { return f.applied }

func (f *fakePatch) Apply() error {
	if f.log != nil {
		*f.log = append(*f.log, "apply "+f.name)
	}
	if f.fail != nil {
		return f.fail
	}
	f.applied = true
	return nil
}

func (f *fakePatch) Revert() error {
	if f.log != nil {
		*f.log = append(*f.log, "revert "+f.name)
	}
	if f.fail != nil {
		return f.fail
	}
	f.applied = false
	return nil
}

var _ apis.Patch = (*fakePatch)(nil)

func TestRegister_Basic(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()

	p1 := &fakePatch{owner: owner, name: "p1"}
	p2 := &fakePatch{owner: owner, name: "p2"}

	if err := reg.Register(p1); err != nil {
		t.Fatalf("Register(p1): %v", err)
	}
	if err := reg.Register(p2); err != nil {
		t.Fatalf("Register(p2): %v", err)
	}
	// Idempotent.
	if err := reg.Register(p1); err != nil {
		t.Fatalf("Register(p1) again: %v", err)
	}

	if c := reg.Count(); c != 2 {
		t.Fatalf("Count: got %d want 2", c)
	}
	got := reg.ForOwner(owner)
	if len(got) != 2 || got[0] != p1 || got[1] != p2 {
		t.Fatalf("ForOwner order: got %v", got)
	}
	if owners := reg.Owners(); len(owners) != 1 || owners[0] != apis.Target(owner) {
		t.Fatalf("Owners: got %v", owners)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(nil); !errors.Is(err, registry.ErrNilPatch) {
		t.Fatalf("Register(nil): got %v want ErrNilPatch", err)
	}
	if err := reg.Register(&fakePatch{}); !errors.Is(err, apis.ErrInvalidOwner) {
		t.Fatalf("Register(nil owner): got %v want ErrInvalidOwner", err)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count after invalid registrations: %d", reg.Count())
	}
}

func TestUnregister(t *testing.T) {
	reg := registry.New()
	a, b := target.NewObject(), target.NewObject()

	pa1 := &fakePatch{owner: a}
	pa2 := &fakePatch{owner: a}
	pb := &fakePatch{owner: b}
	for _, p := range []*fakePatch{pa1, pa2, pb} {
		if err := reg.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	if !reg.Unregister(pa1) {
		t.Fatal("Unregister(pa1) = false, want true")
	}
	if reg.Unregister(pa1) {
		t.Fatal("second Unregister(pa1) = true, want false")
	}
	if got := reg.ForOwner(a); len(got) != 1 || got[0] != pa2 {
		t.Fatalf("ForOwner(a) after unregister: %v", got)
	}

	// Removing the last patch drops the owner.
	reg.Unregister(pb)
	if got := reg.ForOwner(b); got != nil {
		t.Fatalf("ForOwner(b): got %v want nil", got)
	}
	if n := len(reg.Owners()); n != 1 {
		t.Fatalf("Owners: got %d want 1", n)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count: got %d want 1", reg.Count())
	}
	if reg.Unregister(nil) {
		t.Fatal("Unregister(nil) = true")
	}
}

func TestForOwner_Snapshot(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()
	p := &fakePatch{owner: owner}
	_ = reg.Register(p)

	snap := reg.ForOwner(owner)
	snap[0] = nil

	if got := reg.ForOwner(owner); got[0] != p {
		t.Fatal("ForOwner must return a copy")
	}
	if got := reg.ForOwner(nil); got != nil {
		t.Fatalf("ForOwner(nil): %v", got)
	}
	if got := reg.ForOwner(target.NewObject()); got != nil {
		t.Fatalf("ForOwner(unknown): %v", got)
	}
}

func TestReset(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()
	_ = reg.Register(&fakePatch{owner: owner})
	_ = reg.Register(&fakePatch{owner: target.NewObject()})

	reg.Reset()

	if reg.Count() != 0 || len(reg.Owners()) != 0 || reg.ForOwner(owner) != nil {
		t.Fatalf("registry not empty after Reset: count=%d", reg.Count())
	}
}

func TestEnableDisableFor_Order(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()
	var calls []string

	p1 := &fakePatch{owner: owner, name: "p1", log: &calls}
	p2 := &fakePatch{owner: owner, name: "p2", log: &calls}
	_ = reg.Register(p1)
	_ = reg.Register(p2)

	if err := registry.EnableFor(reg, owner); err != nil {
		t.Fatalf("EnableFor: %v", err)
	}
	if !p1.applied || !p2.applied {
		t.Fatal("EnableFor did not apply every patch")
	}
	if err := registry.DisableFor(reg, owner); err != nil {
		t.Fatalf("DisableFor: %v", err)
	}
	if p1.applied || p2.applied {
		t.Fatal("DisableFor did not revert every patch")
	}

	want := []string{"apply p1", "apply p2", "revert p1", "revert p2"}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %v want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls[%d]: got %q want %q", i, calls[i], want[i])
		}
	}
}

func TestEnableFor_StopsAtFirstError(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()
	boom := errors.New("boom")

	p1 := &fakePatch{owner: owner}
	p2 := &fakePatch{owner: owner, fail: boom}
	p3 := &fakePatch{owner: owner}
	_ = reg.Register(p1)
	_ = reg.Register(p2)
	_ = reg.Register(p3)

	err := registry.EnableFor(reg, owner)
	if !errors.Is(err, boom) {
		t.Fatalf("EnableFor: got %v want boom", err)
	}
	if !p1.applied {
		t.Fatal("p1 should stay applied")
	}
	if p3.applied {
		t.Fatal("p3 should not be reached")
	}
}

func TestEnableFor_UnknownOwner(t *testing.T) {
	reg := registry.New()
	if err := registry.EnableFor(reg, target.NewObject()); err != nil {
		t.Fatalf("EnableFor with no patches: %v", err)
	}
	if err := registry.DisableFor(reg, target.NewObject()); err != nil {
		t.Fatalf("DisableFor with no patches: %v", err)
	}
}
