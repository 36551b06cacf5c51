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

// NewDescriberStrategy creates an apis.Strategy that uses apis.Describer.
func NewDescriberStrategy() apis.Strategy {
	return &describerStrategy{}
}

// describerStrategy is a zero-cost fast path: if v implements apis.Describer,
// install its PatchDescriptor() and stop the chain.
type describerStrategy struct{}

// Ensure describerStrategy implements apis.Strategy.
var _ apis.Strategy = (*describerStrategy)(nil)

// TryNormalize checks if v implements apis.Describer and validates its descriptor.
func (*describerStrategy) TryNormalize(key apis.Key, v any, _ apis.Config) (apis.Descriptor, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	dr, ok := v.(apis.Describer)
	if !ok {
		return nil, false, nil
	}
	d, ok := descriptor.Deref(dr.PatchDescriptor())
	if !ok {
		return nil, true, &apis.DescriptorError{Key: key, Reason: "describer returned no descriptor"}
	}
	if err := descriptor.Validate(key, d); err != nil {
		return nil, true, err
	}
	return d, true, nil
}
