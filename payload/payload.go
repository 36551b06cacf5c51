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

// Package payload assembles ordered key -> descriptor sets for patches.
package payload

import (
	"errors"
	"sort"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/descriptor"
)

// ErrNilNormalizer is returned when a payload is built without a normalizer.
var ErrNilNormalizer = errors.New("patchx(payload): nil normalizer")

// Entry is one key -> descriptor installation.
type Entry struct {
	Key        apis.Key
	Descriptor apis.Descriptor
}

// Payload is an ordered list of entries with unique keys.
type Payload []Entry

// Keys returns the payload keys in order.
func (p Payload) Keys() []apis.Key {
	out := make([]apis.Key, len(p))
	for i, e := range p {
		out[i] = e.Key
	}
	return out
}

// Lookup returns the descriptor for key.
func (p Payload) Lookup(key apis.Key) (apis.Descriptor, bool) {
	for _, e := range p {
		if e.Key == key {
			return e.Descriptor, true
		}
	}
	return nil, false
}

// Validate checks that every entry is installable and keys are unique.
func (p Payload) Validate() error {
	seen := make(map[apis.Key]struct{}, len(p))
	for _, e := range p {
		if _, dup := seen[e.Key]; dup {
			return &apis.DescriptorError{Key: e.Key, Reason: "duplicate key"}
		}
		seen[e.Key] = struct{}{}
		if err := descriptor.Validate(e.Key, e.Descriptor); err != nil {
			return err
		}
	}
	return nil
}

// FromMap normalizes every value of m through n. Keys are sorted so the
// resulting order is deterministic.
func FromMap(m map[apis.Key]any, n apis.Normalizer, cfg apis.Config) (Payload, error) {
	if n == nil {
		return nil, ErrNilNormalizer
	}
	keys := make([]apis.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make(Payload, 0, len(keys))
	for _, k := range keys {
		d, err := n.Normalize(k, m[k], cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: k, Descriptor: d})
	}
	return out, nil
}
