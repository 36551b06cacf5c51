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

package strategy

import (
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/descriptor"
)

// NewDescriptorStrategy creates an apis.Strategy that accepts typed descriptors.
func NewDescriptorStrategy() apis.Strategy {
	return descriptorStrategy{}
}

// descriptorStrategy passes apis.DataDescriptor / apis.AccessorDescriptor
// (and pointers to them) through after validation.
type descriptorStrategy struct{}

// Ensure descriptorStrategy implements apis.Strategy.
var _ apis.Strategy = (*descriptorStrategy)(nil)

// TryNormalize handles typed descriptors.
func (descriptorStrategy) TryNormalize(key apis.Key, v any, _ apis.Config) (apis.Descriptor, bool, error) {
	d, ok := descriptor.Deref(v)
	if !ok {
		return nil, false, nil
	}
	if err := descriptor.Validate(key, d); err != nil {
		return nil, true, err
	}
	return d, true, nil
}
