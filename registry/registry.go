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

package registry

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/patchx/apis"
	uref "dirpx.dev/patchx/utils/reflect"
)

var (
	// ErrNilPatch is returned when a nil patch is provided.
	ErrNilPatch = errors.New("patchx(registry): nil patch provided")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// bucket is the immutable list of patches for one owner.
// Writers replace buckets; they never mutate a published one.
type bucket struct {
	owner   apis.Target
	patches []apis.Patch
}

// registry is a Registry backed by sync.Map keyed by owner identity.
type registry struct {
	// mu serializes writers and keeps count consistent.
	mu sync.Mutex
	// m maps uref.Ref (owner identity) to *bucket.
	m sync.Map
	// count tracks the number of registered patches.
	count int
}

// Register appends p to its owner's bucket.
// It is idempotent for a patch that is already registered.
func (r *registry) Register(p apis.Patch) error {
	// Validate inputs early.
	if p == nil {
		return ErrNilPatch
	}
	owner := p.Owner()
	ref, err := uref.Identity(owner)
	if err != nil {
		return fmt.Errorf("%w: %v", apis.ErrInvalidOwner, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var prev []apis.Patch
	if v, ok := r.m.Load(ref); ok {
		prev = v.(*bucket).patches
		for _, q := range prev {
			if q == p {
				return nil // idempotent re-registration
			}
		}
	}

	next := make([]apis.Patch, len(prev), len(prev)+1)
	copy(next, prev)
	next = append(next, p)
	r.m.Store(ref, &bucket{owner: owner, patches: next})
	r.count++
	return nil
}

// Unregister removes p from its owner's bucket.
func (r *registry) Unregister(p apis.Patch) bool {
	if p == nil {
		return false
	}
	ref, err := uref.Identity(p.Owner())
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.m.Load(ref)
	if !ok {
		return false
	}
	b := v.(*bucket)
	for i, q := range b.patches {
		if q != p {
			continue
		}
		if len(b.patches) == 1 {
			r.m.Delete(ref)
		} else {
			next := make([]apis.Patch, 0, len(b.patches)-1)
			next = append(next, b.patches[:i]...)
			next = append(next, b.patches[i+1:]...)
			r.m.Store(ref, &bucket{owner: b.owner, patches: next})
		}
		r.count--
		return true
	}
	return false
}

// ForOwner returns a copy of owner's patches in registration order.
func (r *registry) ForOwner(owner apis.Target) []apis.Patch {
	ref, err := uref.Identity(owner)
	if err != nil {
		return nil
	}
	v, ok := r.m.Load(ref)
	if !ok {
		return nil
	}
	b := v.(*bucket)
	out := make([]apis.Patch, len(b.patches))
	copy(out, b.patches)
	return out
}

// Owners returns a snapshot of all owners (order is unspecified).
func (r *registry) Owners() []apis.Target {
	var out []apis.Target
	r.m.Range(func(_, value any) bool {
		out = append(out, value.(*bucket).owner)
		return true
	})
	return out
}

// Count returns the number of registered patches.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registrations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Range(func(key, _ any) bool {
		r.m.Delete(key)
		return true
	})
	r.count = 0
}
