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

// NewShapeStrategy creates an apis.Strategy for descriptor-shaped maps.
func NewShapeStrategy() apis.Strategy {
	return shapeStrategy{}
}

// shapeStrategy converts descriptor.Shape / map[string]any values that
// classify as a descriptor. Under cfg.StrictShapes, a map made only of
// attribute names that fails to classify is rejected instead of falling
// through to the plain value strategy.
type shapeStrategy struct{}

// Ensure shapeStrategy implements apis.Strategy.
var _ apis.Strategy = (*shapeStrategy)(nil)

// TryNormalize handles descriptor-shaped maps.
func (shapeStrategy) TryNormalize(key apis.Key, v any, cfg apis.Config) (apis.Descriptor, bool, error) {
	if descriptor.IsDescriptor(v) {
		if _, typed := descriptor.Deref(v); typed {
			return nil, false, nil
		}
		d, err := descriptor.FromShape(key, v, cfg)
		return d, true, err
	}
	if cfg.StrictShapes && descriptor.LooksLikeShape(v) {
		return nil, true, &apis.DescriptorError{Key: key, Reason: "shape is neither a data nor an accessor descriptor"}
	}
	return nil, false, nil
}
