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

// Patch is the view of a patch the Registry needs for bulk replay.
type Patch interface {
	// Owner returns the target the patch mutates.
	Owner() Target
	// Apply installs the patch. Idempotent.
	Apply() error
	// Revert restores the target. Idempotent.
	Revert() error
	// Applied reports whether the patch is currently installed.
	Applied() bool
}

// Registry indexes patches by owner so they can be enabled or disabled in bulk.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register appends p to its owner's list. Re-registering the same patch is a no-op.
	Register(p Patch) error
	// Unregister removes p. It reports whether p was registered.
	Unregister(p Patch) bool
	// ForOwner returns a snapshot of owner's patches in registration order.
	ForOwner(owner Target) []Patch
	// Owners returns a snapshot of all owners (order is unspecified).
	Owners() []Target
	// Count returns the total number of registered patches.
	Count() int
	// Reset drops every registration.
	Reset()
}
