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

package registry

import (
	"fmt"
	"log/slog"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/internal/logger"
)

// EnableFor applies every patch registered for owner, in registration order.
// It stops at the first failure and returns that error; patches applied
// before it stay applied.
func EnableFor(reg apis.Registry, owner apis.Target) error {
	return replay(reg, owner, "enable", apis.Patch.Apply)
}

// DisableFor reverts every patch registered for owner, in registration order.
// It stops at the first failure and returns that error.
func DisableFor(reg apis.Registry, owner apis.Target) error {
	return replay(reg, owner, "disable", apis.Patch.Revert)
}

func replay(reg apis.Registry, owner apis.Target, op string, fn func(apis.Patch) error) error {
	if reg == nil {
		return nil
	}
	patches := reg.ForOwner(owner)
	logger.L().Debug("registry bulk "+op,
		slog.String("owner", fmt.Sprintf("%T", owner)),
		slog.Int("patches", len(patches)))
	for i, p := range patches {
		if err := fn(p); err != nil {
			return fmt.Errorf("patchx(registry): %s patch %d of %d: %w", op, i+1, len(patches), err)
		}
	}
	return nil
}
