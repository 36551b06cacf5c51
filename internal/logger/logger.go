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

// Package logger holds the process-wide structured logger used by patchx
// packages. It discards all output until Set is called.
package logger

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var l atomic.Pointer[slog.Logger]

func init() {
	l.Store(discard())
}

// L returns the current logger. Never nil.
func L() *slog.Logger {
	return l.Load()
}

// Set replaces the logger. A nil lg restores the discarding logger.
func Set(lg *slog.Logger) {
	if lg == nil {
		lg = discard()
	}
	l.Store(lg)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
