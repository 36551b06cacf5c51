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

// Package patchx provides a reversible property-patch engine.
//
// A patch installs a named set of property descriptors (data or accessor) on
// a shared target, remembers every descriptor it overwrites, and restores the
// target to its exact prior shape on Revert.
//
// # Design
//
// The engine is split into small packages:
//
//   - apis: contracts. Target is the capability contract of a patched object
//     (ReadDescriptor, DefineDescriptor, DeleteKey, IsExtensible, OwnKeys).
//     Descriptor is the sealed union of DataDescriptor and AccessorDescriptor.
//
//   - descriptor: builders (BuildData, BuildAccessor), classification
//     (IsData, IsAccessor, IsDescriptor) and Record, an immutable snapshot of
//     one property on one owner.
//
//   - ledger: captures which payload keys already exist on the owner before
//     any mutation.
//
//   - normalizer, strategy: turn payload values into descriptors. The default
//     chain tries, in order:
//     1. apis.Describer values, which carry their own descriptor.
//     2. Typed descriptors.
//     3. Descriptor-shaped maps ({"get": fn}, {"value": 1, "writable": false}).
//     4. Anything else, wrapped in a data descriptor.
//
//   - patch: Patch (apply/revert) and Toggle (nested start/stop windows).
//
//   - registry: groups patches by owner identity for bulk enable/disable.
//
//   - target: in-memory targets. Object implements full descriptor
//     semantics; Values adapts a plain map.
//
// This package is the process-default composition root. Like the rest of
// patchx it holds an immutable snapshot (config, registry, normalizer,
// builder, ext) behind an atomic pointer. Readers load it without locks;
// writers build a new snapshot under a mutex and swap it in.
//
// # Usage
//
//	obj := target.ObjectFrom(map[string]any{"x": 1})
//	p, err := patchx.New(obj, map[apis.Key]any{
//		"x":     2,
//		"greet": func() string { return "hi" },
//	})
//	if err != nil {
//		return err
//	}
//	_ = p.Apply()        // obj.x == 2, obj.greet() == "hi"
//	_ = p.Revert()       // obj.x == 1, greet is gone
//
//	t := p.CreateToggle()
//	_ = t.Do(func() error {
//		// patched for the duration of fn
//		return nil
//	})
//
//	_ = patchx.EnableFor(obj)  // apply every registered patch for obj
//	_ = patchx.DisableFor(obj) // revert them, in registration order
//
// # Scope
//
// patchx is not a sandbox: nothing stops other code from redefining or
// deleting a patched key behind the engine's back, and Revert re-installs
// captured records verbatim even if the target changed in between.
// Execution is expected to be single-threaded per target; the registry and
// the global snapshot are safe for concurrent use.
package patchx
