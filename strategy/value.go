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

// NewValueStrategy creates an apis.Strategy that wraps any value in a data descriptor.
func NewValueStrategy() apis.Strategy {
	return valueStrategy{}
}

// valueStrategy is the universal fallback: v becomes the Value of a data
// descriptor whose flags come from cfg. It always handles.
type valueStrategy struct{}

// Ensure valueStrategy implements apis.Strategy.
var _ apis.Strategy = (*valueStrategy)(nil)

// TryNormalize wraps v.
func (valueStrategy) TryNormalize(_ apis.Key, v any, cfg apis.Config) (apis.Descriptor, bool, error) {
	return descriptor.BuildData(v, descriptor.FromConfig(cfg)), true, nil
}
