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

// Package dump renders targets and patches as YAML snapshots and diffs them.
package dump

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-yaml"

	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/descriptor"
	uref "dirpx.dev/patchx/utils/reflect"
)

// Property is the printable form of one descriptor.Record.
type Property struct {
	Key          string `yaml:"key"`
	Kind         string `yaml:"kind"`
	Value        string `yaml:"value,omitempty"`
	Get          string `yaml:"get,omitempty"`
	Set          string `yaml:"set,omitempty"`
	Writable     bool   `yaml:"writable,omitempty"`
	Enumerable   bool   `yaml:"enumerable"`
	Configurable bool   `yaml:"configurable"`
}

// Snapshot is the printable shape of a target at one point in time.
type Snapshot struct {
	Extensible bool       `yaml:"extensible"`
	Properties []Property `yaml:"properties"`
}

// Introspector is the read-only view of a patch that Describe needs.
// *patch.Patch implements it.
type Introspector interface {
	Name() string
	Applied() bool
	Patches() []descriptor.Record
	Conflicts() []descriptor.Record
}

// PatchView is the printable state of a patch.
type PatchView struct {
	Name      string     `yaml:"name,omitempty"`
	Applied   bool       `yaml:"applied"`
	Patches   []Property `yaml:"patches"`
	Conflicts []Property `yaml:"conflicts,omitempty"`
}

// Capture snapshots every own key of t in enumeration order.
func Capture(t apis.Target) Snapshot {
	s := Snapshot{Extensible: t.IsExtensible()}
	for _, k := range t.OwnKeys() {
		s.Properties = append(s.Properties, PropertyOf(descriptor.Read(t, k)))
	}
	return s
}

// Describe returns the printable state of p.
func Describe(p Introspector) PatchView {
	v := PatchView{Name: p.Name(), Applied: p.Applied()}
	for _, r := range p.Patches() {
		v.Patches = append(v.Patches, PropertyOf(r))
	}
	for _, r := range p.Conflicts() {
		v.Conflicts = append(v.Conflicts, PropertyOf(r))
	}
	return v
}

// PropertyOf renders r. Funcs are rendered by signature since they carry no
// printable value.
func PropertyOf(r descriptor.Record) Property {
	p := Property{
		Key:          string(r.Key()),
		Kind:         r.Kind().String(),
		Enumerable:   r.Enumerable(),
		Configurable: r.Configurable(),
	}
	switch d := r.Descriptor().(type) {
	case apis.DataDescriptor:
		p.Value = render(d.Value)
		p.Writable = d.Writable
	case apis.AccessorDescriptor:
		if d.Get != nil {
			p.Get = "getter"
		}
		if d.Set != nil {
			p.Set = "setter"
		}
	}
	return p
}

// YAML encodes v (a Snapshot, PatchView or slice of them).
func YAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("patchx(dump): encode: %w", err)
	}
	return out, nil
}

func render(v any) string {
	if v == nil {
		return "null"
	}
	if uref.IsFunc(v) {
		return reflect.TypeOf(v).String()
	}
	return fmt.Sprintf("%v", v)
}
