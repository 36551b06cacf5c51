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

package dump

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	// OpEqual marks a line present on both sides.
	OpEqual Op = iota
	// OpDelete marks a line only present before.
	OpDelete
	// OpInsert marks a line only present after.
	OpInsert
)

// Line is one line of a diff.
type Line struct {
	Op   Op
	Text string
}

// Diff compares the YAML renderings of two snapshots line by line.
func Diff(before, after Snapshot) ([]Line, error) {
	a, err := YAML(before)
	if err != nil {
		return nil, err
	}
	b, err := YAML(after)
	if err != nil {
		return nil, err
	}
	return DiffText(string(a), string(b)), nil
}

// DiffText compares two texts line by line.
func DiffText(a, b string) []Line {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			op = OpDelete
		case diffpatch.DiffInsert:
			op = OpInsert
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return out
}

// Changed reports whether lines contain any insert or delete.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != OpEqual {
			return true
		}
	}
	return false
}

// Unified renders lines with "+ ", "- " and "  " prefixes.
func Unified(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		switch l.Op {
		case OpInsert:
			sb.WriteString("+ ")
		case OpDelete:
			sb.WriteString("- ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
