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

// Target is the capability contract of an object a Patch mutates.
//
// The engine never touches a target through anything but these methods, so
// any property table can be patched: the in-memory target.Object, a plain map
// adapter, or an adapter over some foreign runtime object.
//
// Implementations must be reference types (pointer, map, func or chan) so the
// registry can group patches by owner identity.
type Target interface {
	// ReadDescriptor returns the own descriptor for key, or (nil, false) if absent.
	ReadDescriptor(key Key) (Descriptor, bool)
	// DefineDescriptor installs d under key, replacing any existing descriptor.
	// It fails when the target is not extensible and key is new, or when the
	// existing descriptor is not configurable.
	DefineDescriptor(key Key, d Descriptor) error
	// DeleteKey removes key. Removing an absent key is not an error.
	DeleteKey(key Key) error
	// IsExtensible reports whether new keys may be added.
	IsExtensible() bool
	// OwnKeys returns the own keys in the target's enumeration order.
	OwnKeys() []Key
}
