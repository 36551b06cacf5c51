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

package patch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/builder"
	"dirpx.dev/patchx/config"
	"dirpx.dev/patchx/patch"
	"dirpx.dev/patchx/target"
)

func patchNormalizer() apis.Normalizer {
	return builder.New().BuildNormalizer(config.DefaultConfig(), nil, nil)
}

func newPatch(t *testing.T, opts ...patch.Option) (*target.Object, *patch.Patch) {
	t.Helper()
	o := target.ObjectFrom(map[string]any{"x": 1})
	p, err := patch.New(o, map[apis.Key]any{"x": 2}, opts...)
	require.NoError(t, err)
	return o, p
}

func TestToggle_StartStop(t *testing.T) {
	o, p := newPatch(t)
	tg := p.CreateToggle()

	require.NoError(t, tg.Start())
	assert.True(t, tg.Started())
	assert.True(t, tg.AppliedPatch())
	assert.True(t, p.Applied())
	assert.Equal(t, 1, p.Holds())
	v, _ := o.Get("x")
	assert.Equal(t, 2, v)

	// Start on a started toggle is a no-op.
	require.NoError(t, tg.Start())
	assert.Equal(t, 1, p.Holds())

	require.NoError(t, tg.Stop())
	assert.False(t, tg.Started())
	assert.False(t, p.Applied())
	assert.Zero(t, p.Holds())
	v, _ = o.Get("x")
	assert.Equal(t, 1, v)

	require.NoError(t, tg.Stop())
}

func TestToggle_NonInterference(t *testing.T) {
	_, p := newPatch(t)
	t1 := p.CreateToggle()
	t2 := p.CreateToggle()

	require.NoError(t, t1.Start())
	require.NoError(t, t2.Start())
	assert.True(t, t1.AppliedPatch())
	assert.False(t, t2.AppliedPatch())

	require.NoError(t, t2.Stop())
	assert.True(t, p.Applied())

	require.NoError(t, t1.Stop())
	assert.False(t, p.Applied())
}

func TestToggle_NonInterference_OwnerStopsFirst(t *testing.T) {
	_, p := newPatch(t)
	t1 := p.CreateToggle()
	t2 := p.CreateToggle()

	require.NoError(t, t1.Start())
	require.NoError(t, t2.Start())

	require.NoError(t, t1.Stop())
	assert.True(t, p.Applied(), "a started sibling keeps the patch applied")

	require.NoError(t, t2.Stop())
	assert.False(t, p.Applied())
}

func TestToggle_AlreadyApplied(t *testing.T) {
	_, p := newPatch(t)
	require.NoError(t, p.Apply())

	tg := p.CreateToggle()
	require.NoError(t, tg.Start())
	assert.False(t, tg.AppliedPatch())
	require.NoError(t, tg.Stop())

	assert.True(t, p.Applied(), "a toggle never reverts what it did not apply")
}

func TestToggle_PreventRevert(t *testing.T) {
	_, p := newPatch(t)
	tg := p.CreateToggleWith(true)
	assert.True(t, tg.PreventRevert())

	require.NoError(t, tg.Start())
	require.NoError(t, tg.Stop())
	assert.True(t, p.Applied())

	_, q := newPatch(t, patch.WithPreventRevert(true))
	qt := q.CreateToggle()
	assert.True(t, qt.PreventRevert())
	assert.Same(t, q, qt.Patch())
	require.NoError(t, qt.Do(func() error { return nil }))
	assert.True(t, q.Applied())
}

func TestToggle_ManualRevertWhileStarted(t *testing.T) {
	_, p := newPatch(t)
	tg := p.CreateToggle()
	require.NoError(t, tg.Start())

	require.NoError(t, p.Revert())
	require.NoError(t, p.Apply())

	// The manual Apply is not toggle-owned.
	require.NoError(t, tg.Stop())
	assert.True(t, p.Applied())
}

func TestToggle_StartFailure(t *testing.T) {
	o, p := newPatch(t)
	o.Freeze()

	tg := p.CreateToggle()
	err := tg.Start()
	assert.ErrorIs(t, err, apis.ErrPatchApply)
	assert.False(t, tg.Started())
	assert.Zero(t, p.Holds())
}

func TestToggle_Do(t *testing.T) {
	o, p := newPatch(t)
	tg := p.CreateToggle()

	var seen any
	err := tg.Do(func() error {
		seen, _ = o.Get("x")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.False(t, p.Applied())

	boom := errors.New("boom")
	err = tg.Do(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Applied(), "Stop runs when fn fails")
}
