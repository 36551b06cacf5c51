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

// Package ledger captures which payload keys already exist on a target
// before a patch mutates it.
package ledger

import (
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/descriptor"
)

// Ledger is the immutable result of Capture: the records of every key that
// existed on the owner at capture time, in payload key order.
type Ledger struct {
	owner     apis.Target
	order     []apis.Key
	conflicts map[apis.Key]descriptor.Record
}

// Capture reads every key on owner and keeps the records of those that exist.
// Duplicate keys are captured once.
func Capture(owner apis.Target, keys []apis.Key) Ledger {
	l := Ledger{owner: owner, conflicts: make(map[apis.Key]descriptor.Record)}
	for _, k := range keys {
		if _, seen := l.conflicts[k]; seen {
			continue
		}
		r := descriptor.Read(owner, k)
		if !r.Existed() {
			continue
		}
		l.conflicts[k] = r
		l.order = append(l.order, k)
	}
	return l
}

// Owner returns the target the ledger was captured from.
func (l Ledger) Owner() apis.Target { return l.owner }

// Conflict returns the record captured for key.
func (l Ledger) Conflict(key apis.Key) (descriptor.Record, bool) {
	r, ok := l.conflicts[key]
	return r, ok
}

// Has reports whether key existed at capture time.
func (l Ledger) Has(key apis.Key) bool {
	_, ok := l.conflicts[key]
	return ok
}

// Conflicts returns the captured records in payload key order.
func (l Ledger) Conflicts() []descriptor.Record {
	out := make([]descriptor.Record, len(l.order))
	for i, k := range l.order {
		out[i] = l.conflicts[k]
	}
	return out
}

// Len returns the number of conflicts.
func (l Ledger) Len() int { return len(l.order) }
