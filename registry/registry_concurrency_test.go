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
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/registry"
	"dirpx.dev/patchx/target"
)

// TestConcurrentRegisterAndForOwner verifies that Register/ForOwner/Owners/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndForOwner(t *testing.T) {
	reg := registry.New()

	owners := make([]*target.Object, 10)
	patches := make([]*fakePatch, 0, 20)
	for i := range owners {
		owners[i] = target.NewObject()
		patches = append(patches, &fakePatch{owner: owners[i]}, &fakePatch{owner: owners[i]})
	}

	// Register once (sequential) to establish baseline.
	for _, p := range patches {
		if err := reg.Register(p); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				o := owners[i%len(owners)]
				if got := reg.ForOwner(o); len(got) != 2 {
					t.Errorf("ForOwner: got %d patches want 2", len(got))
					return
				}
				_ = reg.Count()
				_ = reg.Owners()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = reg.Register(patches[(i+id)%len(patches)])
			}
		}(w)
	}

	wg.Wait()

	if reg.Count() != len(patches) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(patches))
	}
	if n := len(reg.Owners()); n != len(owners) {
		t.Fatalf("owners mismatch: got %d want %d", n, len(owners))
	}
}

// TestConcurrentRegisterUnregister churns one owner's bucket from many goroutines.
func TestConcurrentRegisterUnregister(t *testing.T) {
	reg := registry.New()
	owner := target.NewObject()

	workers := runtime.GOMAXPROCS(0) * 2
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				p := &fakePatch{owner: owner}
				if err := reg.Register(p); err != nil {
					t.Errorf("register: %v", err)
					return
				}
				if !reg.Unregister(p) {
					t.Error("unregister reported false for a registered patch")
					return
				}
			}
		}()
	}
	wg.Wait()

	if reg.Count() != 0 {
		t.Fatalf("count after churn: %d", reg.Count())
	}
	if got := reg.ForOwner(owner); got != nil {
		t.Fatalf("owner bucket should be gone, got %v", got)
	}
}

var _ apis.Registry = registry.New()
