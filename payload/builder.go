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

package payload

import (
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/descriptor"
)

// Builder accumulates entries in insertion order. Setting a key twice
// replaces the earlier entry in place. The first error sticks and is
// returned by Build.
type Builder struct {
	n       apis.Normalizer
	cfg     apis.Config
	entries Payload
	index   map[apis.Key]int
	err     error
}

// NewBuilder returns a Builder normalizing plain values through n with cfg.
func NewBuilder(n apis.Normalizer, cfg apis.Config) *Builder {
	b := &Builder{n: n, cfg: cfg, index: make(map[apis.Key]int)}
	if n == nil {
		b.err = ErrNilNormalizer
	}
	return b
}

// Set normalizes v and stores it under key.
func (b *Builder) Set(key apis.Key, v any) *Builder {
	if b.err != nil {
		return b
	}
	d, err := b.n.Normalize(key, v, b.cfg)
	if err != nil {
		b.err = err
		return b
	}
	b.put(key, d)
	return b
}

// Data stores a data descriptor for value under key.
func (b *Builder) Data(key apis.Key, value any, opts ...descriptor.Option) *Builder {
	if b.err != nil {
		return b
	}
	opts = append([]descriptor.Option{descriptor.FromConfig(b.cfg)}, opts...)
	b.put(key, descriptor.BuildData(value, opts...))
	return b
}

// Accessor stores an accessor descriptor under key.
func (b *Builder) Accessor(key apis.Key, getter, setter any, opts ...descriptor.Option) *Builder {
	if b.err != nil {
		return b
	}
	opts = append([]descriptor.Option{descriptor.FromConfig(b.cfg)}, opts...)
	d, err := descriptor.BuildAccessor(getter, setter, opts...)
	if err != nil {
		if de, ok := err.(*apis.DescriptorError); ok {
			err = &apis.DescriptorError{Key: key, Reason: de.Reason}
		}
		b.err = err
		return b
	}
	b.put(key, d)
	return b
}

// Build returns the assembled payload.
func (b *Builder) Build() (Payload, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make(Payload, len(b.entries))
	copy(out, b.entries)
	return out, nil
}

func (b *Builder) put(key apis.Key, d apis.Descriptor) {
	if i, ok := b.index[key]; ok {
		b.entries[i].Descriptor = d
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, Entry{Key: key, Descriptor: d})
}
