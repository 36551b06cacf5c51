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

// Describer is implemented by payload values that carry their own descriptor.
// When a payload value implements Describer, its PatchDescriptor is installed
// verbatim instead of wrapping the value in a DataDescriptor.
type Describer interface {
	PatchDescriptor() Descriptor
}
