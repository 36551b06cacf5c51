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

package patch

import (
	"errors"
	"log/slog"
)

// Toggle scopes one application of a Patch to a start/stop window.
//
// Toggles over the same Patch nest. The toggle that finds the patch
// unapplied at Start applies it and, unless created with preventRevert, owns
// reverting it. Reversion is deferred until the last started toggle stops,
// so a sibling that is still started never sees the patch disappear. A patch
// that was already applied before any toggle started is never reverted by a
// toggle.
type Toggle struct {
	patch         *Patch
	preventRevert bool
	started       bool

	// needsApplication records that this toggle applied the patch at Start.
	needsApplication bool
	// needsReversion records that the patch was already applied at Start.
	needsReversion bool
}

// CreateToggle returns a new Toggle using the patch's default preventRevert.
func (p *Patch) CreateToggle() *Toggle {
	return &Toggle{patch: p, preventRevert: p.preventRevert}
}

// CreateToggleWith returns a new Toggle with an explicit preventRevert.
func (p *Patch) CreateToggleWith(preventRevert bool) *Toggle {
	return &Toggle{patch: p, preventRevert: preventRevert}
}

// Patch returns the coordinated patch.
func (t *Toggle) Patch() *Patch { return t.patch }

// PreventRevert reports whether Stop is barred from reverting what Start applied.
func (t *Toggle) PreventRevert() bool { return t.preventRevert }

// Started reports whether the toggle is inside its window.
func (t *Toggle) Started() bool { return t.started }

// AppliedPatch reports whether this toggle's Start applied the patch.
func (t *Toggle) AppliedPatch() bool { return t.needsApplication }

// Start opens the window, applying the patch if it is not applied yet.
// It is a no-op on a started toggle. If Apply fails the toggle stays stopped.
func (t *Toggle) Start() error {
	if t.started {
		return nil
	}
	p := t.patch
	p.mu.Lock()
	defer p.mu.Unlock()

	needsApplication := !p.applied
	if needsApplication {
		if err := p.applyLocked(); err != nil {
			return err
		}
		p.toggleOwned = !t.preventRevert
	}
	t.needsApplication = needsApplication
	t.needsReversion = !needsApplication
	t.started = true
	p.holds++
	p.log.Debug("toggle started",
		slog.String("patch", p.String()),
		slog.Bool("applied", needsApplication),
		slog.Int("holds", p.holds))
	return nil
}

// Stop closes the window. When it is the last started toggle and a toggle
// owns the application, the patch is reverted. It is a no-op on a stopped
// toggle. The toggle is stopped even when Revert fails.
func (t *Toggle) Stop() error {
	if !t.started {
		return nil
	}
	p := t.patch
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.holds > 0 {
		p.holds--
	}
	var err error
	if p.holds == 0 && p.toggleOwned {
		err = p.revertLocked()
	}
	t.needsApplication = false
	t.needsReversion = false
	t.started = false
	p.log.Debug("toggle stopped",
		slog.String("patch", p.String()),
		slog.Bool("applied", p.applied),
		slog.Int("holds", p.holds))
	return err
}

// Do runs fn between Start and Stop. Stop runs even when fn fails; errors
// from both are joined.
func (t *Toggle) Do(fn func() error) error {
	if err := t.Start(); err != nil {
		return err
	}
	ferr := fn()
	return errors.Join(ferr, t.Stop())
}
