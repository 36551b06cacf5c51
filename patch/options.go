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
	"log/slog"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/config"
)

// Option configures a Patch at construction.
type Option func(*options)

type options struct {
	reg           apis.Registry
	norm          apis.Normalizer
	cfg           apis.Config
	preventRevert bool
	log           *slog.Logger
	name          string
}

func newOptions(opts []Option) options {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithRegistry registers the patch in reg. Without it the patch is not
// reachable by bulk enable/disable.
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithNormalizer sets the normalizer used to turn plain payload values into
// descriptors. Defaults to the builder's standard chain.
func WithNormalizer(n apis.Normalizer) Option {
	return func(o *options) { o.norm = n }
}

// WithConfig sets the normalization config.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithPreventRevert sets the default preventRevert of toggles made by CreateToggle.
func WithPreventRevert(prevent bool) Option {
	return func(o *options) { o.preventRevert = prevent }
}

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithName labels the patch in logs and dumps.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}
