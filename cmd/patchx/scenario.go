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

package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"dirpx.dev/patchx/apis"
)

// Scenario is the file format replayed by "patchx run".
//
//	name: demo
//	object:
//	  x: 1
//	patches:
//	  - name: p1
//	    entries:
//	      x: 2
//	      y: {value: 3, writable: false}
//	steps:
//	  - apply p1
//	  - revert p1
type Scenario struct {
	Name    string         `yaml:"name"`
	Object  map[string]any `yaml:"object"`
	Patches []PatchSpec    `yaml:"patches"`
	Steps   []string       `yaml:"steps"`
}

// PatchSpec declares one patch of a scenario.
type PatchSpec struct {
	Name          string         `yaml:"name"`
	PreventRevert bool           `yaml:"preventRevert"`
	Entries       map[string]any `yaml:"entries"`
}

// entries converts the YAML entries to payload keys.
func (s PatchSpec) entries() map[apis.Key]any {
	out := make(map[apis.Key]any, len(s.Entries))
	for k, v := range s.Entries {
		out[apis.Key(k)] = v
	}
	return out
}

// loadScenario reads and validates a scenario file.
func loadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(raw)
}

func parseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	seen := make(map[string]struct{}, len(sc.Patches))
	for i, p := range sc.Patches {
		if p.Name == "" {
			return nil, fmt.Errorf("patch #%d: missing name", i+1)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("patch %q: declared twice", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return &sc, nil
}
