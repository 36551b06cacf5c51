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

package builder

import (
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/normalizer"
	"dirpx.dev/patchx/registry"
	"dirpx.dev/patchx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. A pre-existing
// registry is carried over as is: patches keep a handle to the registry they
// registered in, so replacing it would strand their Release calls.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, _ any) apis.Registry {
	if preg != nil {
		return preg
	}
	return registry.New()
}

// BuildNormalizer builds and returns a new apis.Normalizer. The default chain
// is Describer -> typed Descriptor -> Shape -> plain Value. Normalizers are
// stateless, so a pre-existing one is not reused.
func (b *builder) BuildNormalizer(_ apis.Config, _ apis.Normalizer, _ any) apis.Normalizer {
	return normalizer.New(
		strategy.NewDescriberStrategy(),
		strategy.NewDescriptorStrategy(),
		strategy.NewShapeStrategy(),
		strategy.NewValueStrategy(),
	)
}
