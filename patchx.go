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

package patchx

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/builder"
	"dirpx.dev/patchx/config"
	"dirpx.dev/patchx/internal/logger"
	"dirpx.dev/patchx/patch"
	"dirpx.dev/patchx/payload"
	"dirpx.dev/patchx/registry"
)

// init initializes the global state.
func init() {
	// Initialize state with default cfg, reg, and norm.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.norm = b.BuildNormalizer(s.cfg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("patchx: builder returned nil registry")
	// ErrNilNormalizer is returned when a builder returns a nil normalizer.
	ErrNilNormalizer = errors.New("patchx: builder returned nil normalizer")
)

// New builds a Patch against owner using the global registry, normalizer and
// configuration. opts are applied after the global defaults, so they may
// override any of them.
func New(owner apis.Target, entries map[apis.Key]any, opts ...patch.Option) (*patch.Patch, error) {
	return patch.New(owner, entries, withGlobals(opts)...)
}

// NewBuilder returns a payload builder wired to the global normalizer and
// configuration.
func NewBuilder() *payload.Builder {
	s := st.Load()
	return payload.NewBuilder(s.norm, s.cfg)
}

// NewFromPayload builds a Patch from an assembled payload using the global
// registry. See patch.NewFromPayload.
func NewFromPayload(owner apis.Target, p payload.Payload, opts ...patch.Option) (*patch.Patch, error) {
	return patch.NewFromPayload(owner, p, withGlobals(opts)...)
}

// EnableFor applies every globally registered patch for owner, in
// registration order. See registry.EnableFor.
func EnableFor(owner apis.Target) error {
	return registry.EnableFor(st.Load().reg, owner)
}

// DisableFor reverts every globally registered patch for owner, in
// registration order. See registry.DisableFor.
func DisableFor(owner apis.Target) error {
	return registry.DisableFor(st.Load().reg, owner)
}

// SetLogger replaces the process logger used by every patchx package.
// A nil logger silences output.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// A nil reg or norm is rebuilt through the (possibly new) builder, which
// receives the previous registry so registrations survive.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, norm apis.Normalizer, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	nreg := reg
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, ext)
	}
	nnorm := norm
	if nnorm == nil {
		nnorm = nbld.BuildNormalizer(ncfg, old.norm, ext)
	}

	publish(&state{cfg: ncfg, ext: ext, reg: nreg, norm: nnorm, bld: nbld})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the registry and
// normalizer through the current builder. Registered patches survive.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld
	publish(&state{
		cfg:  cfg,
		ext:  old.ext,
		reg:  b.BuildRegistry(cfg, old.reg, old.ext),
		norm: b.BuildNormalizer(cfg, old.norm, old.ext),
		bld:  b,
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global registry. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg = reg
	publish(&next)
}

// Normalizer returns the global normalizer.
func Normalizer() apis.Normalizer {
	return st.Load().norm
}

// SetNormalizer replaces the global normalizer. A nil norm is ignored.
func SetNormalizer(norm apis.Normalizer) {
	if norm == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.norm = norm
	publish(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the registry and
// normalizer through it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(&state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  b.BuildRegistry(old.cfg, old.reg, old.ext),
		norm: b.BuildNormalizer(old.cfg, old.norm, old.ext),
		bld:  b,
	})
}

// SetExt replaces the extension value and rebuilds layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld
	publish(&state{
		cfg:  old.cfg,
		ext:  ext,
		reg:  b.BuildRegistry(old.cfg, old.reg, ext),
		norm: b.BuildNormalizer(old.cfg, old.norm, ext),
		bld:  b,
	})
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// withGlobals prepends the global registry, normalizer and config to opts.
func withGlobals(opts []patch.Option) []patch.Option {
	s := st.Load()
	out := make([]patch.Option, 0, len(opts)+3)
	out = append(out,
		patch.WithRegistry(s.reg),
		patch.WithNormalizer(s.norm),
		patch.WithConfig(s.cfg),
	)
	return append(out, opts...)
}

// publish validates s and stores it. Callers hold buildMu.
func publish(s *state) {
	// Ensure non-nil reg and norm.
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.norm == nil {
		panic(ErrNilNormalizer)
	}
	st.Store(s)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension value.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// norm is the global normalizer.
	norm apis.Normalizer
	// bld is the global builder.
	bld apis.Builder
}
