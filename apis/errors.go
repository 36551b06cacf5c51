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

package apis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOwner is returned when a patch target is not a non-nil reference.
	ErrInvalidOwner = errors.New("patchx: invalid owner")
	// ErrInvalidDescriptor is returned for malformed descriptors or payload values.
	ErrInvalidDescriptor = errors.New("patchx: invalid descriptor")
	// ErrPatchApply is matched by every *ApplyError.
	ErrPatchApply = errors.New("patchx: patch apply failed")
	// ErrPatchRevert is matched by every *RevertError.
	ErrPatchRevert = errors.New("patchx: patch revert failed")
	// ErrPropertyNotFound is returned by diagnostic reads of a missing key.
	ErrPropertyNotFound = errors.New("patchx: property not found")
	// ErrNotExtensible is returned by targets refusing to add a new key.
	ErrNotExtensible = errors.New("patchx: target is not extensible")
	// ErrNotConfigurable is returned by targets refusing to redefine or delete a key.
	ErrNotConfigurable = errors.New("patchx: property is not configurable")
	// ErrNotWritable is returned by targets refusing an assignment.
	ErrNotWritable = errors.New("patchx: property is not writable")
)

// ApplyError reports the key that could not be installed during Apply.
type ApplyError struct {
	// Key is the payload key that failed.
	Key Key
	// Owner is the patched target.
	Owner Target
	// Err is the error returned by the target.
	Err error
}

// Error implements error.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("patchx: apply %q on %T: %v", e.Key, e.Owner, e.Err)
}

// Unwrap returns the target error.
func (e *ApplyError) Unwrap() error { return e.Err }

// Is matches ErrPatchApply.
func (e *ApplyError) Is(target error) bool { return target == ErrPatchApply }

// RevertError reports a key that could not be restored during Revert.
type RevertError struct {
	// Key is the payload key that failed.
	Key Key
	// Owner is the patched target.
	Owner Target
	// Err is the error returned by the target.
	Err error
}

// Error implements error.
func (e *RevertError) Error() string {
	return fmt.Sprintf("patchx: revert %q on %T: %v", e.Key, e.Owner, e.Err)
}

// Unwrap returns the target error.
func (e *RevertError) Unwrap() error { return e.Err }

// Is matches ErrPatchRevert.
func (e *RevertError) Is(target error) bool { return target == ErrPatchRevert }

// DescriptorError reports a malformed descriptor or payload value.
type DescriptorError struct {
	// Key is the payload key, empty when the descriptor was built outside a payload.
	Key Key
	// Reason is a short human-readable cause.
	Reason string
}

// Error implements error.
func (e *DescriptorError) Error() string {
	if e.Key == "" {
		return "patchx: invalid descriptor: " + e.Reason
	}
	return fmt.Sprintf("patchx: invalid descriptor for %q: %s", e.Key, e.Reason)
}

// Is matches ErrInvalidDescriptor.
func (e *DescriptorError) Is(target error) bool { return target == ErrInvalidDescriptor }
