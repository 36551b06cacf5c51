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

// Config carries read-only knobs that influence payload normalization.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Enumerable is the default enumerability of descriptors built from plain values.
	Enumerable bool

	// Configurable is the default configurability of descriptors built from plain values.
	Configurable bool

	// Writable is the default writability of data descriptors built from plain values.
	Writable bool

	// StrictShapes rejects map[string]any payload values whose keys are all
	// descriptor attribute names but that do not classify as exactly one of
	// data or accessor. When false such maps are installed as plain values.
	StrictShapes bool
}
