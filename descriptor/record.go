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

package descriptor

import (
	"fmt"

	"dirpx.dev/patchx/apis"
)

// Record is an immutable snapshot of one property's descriptor on an owner.
// A Record for an absent key has Existed() == false, a nil Descriptor and
// KindNone.
type Record struct {
	owner   apis.Target
	key     apis.Key
	desc    apis.Descriptor
	existed bool
}

// NewRecord returns a Record for d on owner. A nil d yields a non-existent record.
func NewRecord(owner apis.Target, key apis.Key, d apis.Descriptor) Record {
	return Record{owner: owner, key: key, desc: d, existed: d != nil}
}

// Read returns the live Record for key on owner. It never fails: a missing
// key, or a nil owner, yields a record with Existed() == false.
func Read(owner apis.Target, key apis.Key) Record {
	if owner == nil {
		return Record{key: key}
	}
	d, ok := owner.ReadDescriptor(key)
	if !ok || d == nil {
		return Record{owner: owner, key: key}
	}
	return Record{owner: owner, key: key, desc: d, existed: true}
}

// MustRead is Read for diagnostic paths that expect key to exist.
// It returns apis.ErrPropertyNotFound when it does not.
func MustRead(owner apis.Target, key apis.Key) (Record, error) {
	r := Read(owner, key)
	if !r.existed {
		return r, fmt.Errorf("%w: %q", apis.ErrPropertyNotFound, key)
	}
	return r, nil
}

// Owner returns the object the descriptor was read from.
func (r Record) Owner() apis.Target { return r.owner }

// Key returns the property key.
func (r Record) Key() apis.Key { return r.key }

// Descriptor returns the captured descriptor, nil when the key did not exist.
func (r Record) Descriptor() apis.Descriptor { return r.desc }

// Existed reports whether a descriptor was present.
func (r Record) Existed() bool { return r.existed }

// Kind returns the classification, KindNone when the key did not exist.
func (r Record) Kind() apis.Kind {
	if !r.existed {
		return apis.KindNone
	}
	return r.desc.Kind()
}

// IsData reports whether the record holds a data descriptor.
func (r Record) IsData() bool { return r.Kind() == apis.KindData }

// IsAccessor reports whether the record holds an accessor descriptor.
func (r Record) IsAccessor() bool { return r.Kind() == apis.KindAccessor }

// ReadOnly reports whether assignment cannot change the property: a
// non-writable data descriptor or an accessor without a setter.
func (r Record) ReadOnly() bool {
	switch d := r.desc.(type) {
	case apis.DataDescriptor:
		return !d.Writable
	case apis.AccessorDescriptor:
		return d.Set == nil
	}
	return false
}

// Enumerable reports the enumerable flag, false when absent.
func (r Record) Enumerable() bool { return r.existed && r.desc.IsEnumerable() }

// Configurable reports the configurable flag, false when absent.
func (r Record) Configurable() bool { return r.existed && r.desc.IsConfigurable() }

// Same reports whether r and o captured the same key with equal descriptors.
// Owners are not compared.
func (r Record) Same(o Record) bool {
	return r.key == o.key && r.existed == o.existed && Equal(r.desc, o.desc)
}

// String renders the record for logs.
func (r Record) String() string {
	if !r.existed {
		return fmt.Sprintf("%s: <absent>", r.key)
	}
	flags := ""
	if r.Enumerable() {
		flags += "e"
	}
	if r.Configurable() {
		flags += "c"
	}
	if d, ok := r.desc.(apis.DataDescriptor); ok && d.Writable {
		flags += "w"
	}
	return fmt.Sprintf("%s: %s[%s]", r.key, r.Kind(), flags)
}
