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

// Package descriptor builds, classifies and snapshots property descriptors.
//
// Typed descriptors (apis.DataDescriptor, apis.AccessorDescriptor) classify by
// their type. Loose, descriptor-shaped values (Shape or map[string]any) classify
// by the attribute names they carry:
//
//   - data:     has "value" or "writable", and neither "get" nor "set"
//   - accessor: has "get" or "set", and neither "value" nor "writable"
//
// A Shape is a descriptor only if its keys are a non-empty subset of
// {get, set, value, writable, configurable, enumerable} and it is exactly one
// of the two. Everything in this package is pure; Read only calls
// Target.ReadDescriptor.
package descriptor
