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

// Package patch installs named sets of descriptors onto a target and restores
// the target's prior shape on demand.
//
// A Patch has two states, unapplied (initial) and applied. Apply and Revert
// are the only transitions and both are idempotent. The keys a payload shares
// with the target are captured when the Patch is built; Revert re-installs
// those records verbatim and deletes every other payload key.
//
// Payload code must not revert the Patch that installed it while it runs.
// There is no reentrancy guard: Apply and Revert hold the patch lock while
// they talk to the target.
package patch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/builder"
	"dirpx.dev/patchx/descriptor"
	"dirpx.dev/patchx/internal/logger"
	"dirpx.dev/patchx/ledger"
	"dirpx.dev/patchx/payload"
	uref "dirpx.dev/patchx/utils/reflect"
)

// Patch binds one target to one payload.
type Patch struct {
	owner         apis.Target
	name          string
	entries       payload.Payload
	conflicts     ledger.Ledger
	reg           apis.Registry
	preventRevert bool
	log           *slog.Logger

	mu      sync.Mutex
	applied bool
	// holds counts started toggles.
	holds int
	// toggleOwned is set when a toggle applied the patch and owns reverting it.
	toggleOwned bool
}

// Ensure Patch implements apis.Patch.
var _ apis.Patch = (*Patch)(nil)

// New builds a Patch from a key -> value map. Values are normalized through
// the configured normalizer: typed descriptors and descriptor shapes are
// installed as is, anything else becomes a data descriptor. Keys are
// installed in sorted order.
//
// owner is not mutated. Construction fails without registering anything when
// owner is not a reference or a value cannot be normalized.
func New(owner apis.Target, entries map[apis.Key]any, opts ...Option) (*Patch, error) {
	o := newOptions(opts)
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	n := o.norm
	if n == nil {
		n = builder.New().BuildNormalizer(o.cfg, nil, nil)
	}
	p, err := payload.FromMap(entries, n, o.cfg)
	if err != nil {
		return nil, err
	}
	return build(owner, p, o)
}

// NewFromPayload builds a Patch from an already normalized payload,
// preserving its order.
func NewFromPayload(owner apis.Target, p payload.Payload, opts ...Option) (*Patch, error) {
	o := newOptions(opts)
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cp := make(payload.Payload, len(p))
	copy(cp, p)
	return build(owner, cp, o)
}

func checkOwner(owner apis.Target) error {
	if _, err := uref.Identity(owner); err != nil {
		return fmt.Errorf("%w: %T: %v", apis.ErrInvalidOwner, owner, err)
	}
	return nil
}

func build(owner apis.Target, p payload.Payload, o options) (*Patch, error) {
	log := o.log
	if log == nil {
		log = logger.L()
	}
	pt := &Patch{
		owner:         owner,
		name:          o.name,
		entries:       p,
		conflicts:     ledger.Capture(owner, p.Keys()),
		reg:           o.reg,
		preventRevert: o.preventRevert,
		log:           log,
	}
	if pt.reg != nil {
		if err := pt.reg.Register(pt); err != nil {
			return nil, err
		}
	}
	pt.log.Debug("patch created",
		slog.String("patch", pt.String()),
		slog.String("owner", fmt.Sprintf("%T", owner)),
		slog.Int("keys", len(p)),
		slog.Int("conflicts", pt.conflicts.Len()))
	return pt, nil
}

// Owner returns the patched target.
func (p *Patch) Owner() apis.Target { return p.owner }

// Name returns the patch label, empty if none was given.
func (p *Patch) Name() string { return p.name }

// Keys returns the payload keys in installation order.
func (p *Patch) Keys() []apis.Key { return p.entries.Keys() }

// Applied reports whether the patch is installed.
func (p *Patch) Applied() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applied
}

// Holds returns the number of started toggles.
func (p *Patch) Holds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holds
}

// Patches returns one record per payload entry, in installation order.
func (p *Patch) Patches() []descriptor.Record {
	out := make([]descriptor.Record, len(p.entries))
	for i, e := range p.entries {
		out[i] = descriptor.NewRecord(p.owner, e.Key, e.Descriptor)
	}
	return out
}

// Conflicts returns the records of payload keys that existed on the owner
// when the patch was built.
func (p *Patch) Conflicts() []descriptor.Record {
	return p.conflicts.Conflicts()
}

// Apply installs every payload descriptor on the owner. It is a no-op when
// already applied.
//
// If the owner refuses a key, Apply returns an *apis.ApplyError for that key
// and the patch stays unapplied. Keys installed earlier in the same call are
// not rolled back.
func (p *Patch) Apply() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applyLocked()
}

func (p *Patch) applyLocked() error {
	if p.applied {
		return nil
	}
	for _, e := range p.entries {
		if err := p.owner.DefineDescriptor(e.Key, e.Descriptor); err != nil {
			p.log.Warn("patch apply failed",
				slog.String("patch", p.String()),
				slog.String("key", string(e.Key)),
				slog.Any("err", err))
			return &apis.ApplyError{Key: e.Key, Owner: p.owner, Err: err}
		}
	}
	p.applied = true
	p.log.Debug("patch applied", slog.String("patch", p.String()))
	return nil
}

// Revert restores conflicting keys to their captured records and deletes the
// other payload keys. It is a no-op when not applied.
//
// Every key is attempted. If the owner refuses any of them, the joined
// *apis.RevertError set is returned and the patch stays applied so Revert
// can be retried.
func (p *Patch) Revert() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revertLocked()
}

func (p *Patch) revertLocked() error {
	if !p.applied {
		return nil
	}
	var errs []error
	for _, e := range p.entries {
		var err error
		if rec, ok := p.conflicts.Conflict(e.Key); ok {
			err = p.owner.DefineDescriptor(e.Key, rec.Descriptor())
		} else {
			err = p.owner.DeleteKey(e.Key)
		}
		if err != nil {
			p.log.Warn("patch revert failed",
				slog.String("patch", p.String()),
				slog.String("key", string(e.Key)),
				slog.Any("err", err))
			errs = append(errs, &apis.RevertError{Key: e.Key, Owner: p.owner, Err: err})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	p.applied = false
	p.toggleOwned = false
	p.log.Debug("patch reverted", slog.String("patch", p.String()))
	return nil
}

// Release removes the patch from its registry. It does not revert.
// The patch can still be applied and reverted directly afterwards.
func (p *Patch) Release() {
	if p.reg != nil {
		p.reg.Unregister(p)
	}
}

// String renders the patch for logs: name{key1,key2}.
func (p *Patch) String() string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = string(e.Key)
	}
	name := p.name
	if name == "" {
		name = "patch"
	}
	return name + "{" + strings.Join(keys, ",") + "}"
}
