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

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"dirpx.dev/patchx/dump"
)

// palette colours output lines. The zero value is not usable; see newPalette.
type palette struct {
	header func(format string, a ...any) string
	insert func(format string, a ...any) string
	del    func(format string, a ...any) string
	err    func(format string, a ...any) string
}

// colorEnabled resolves the --color mode against the terminal.
func colorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	}
	return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{header: fmt.Sprintf, insert: fmt.Sprintf, del: fmt.Sprintf, err: fmt.Sprintf}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return palette{
		header: mk(color.FgCyan, color.Bold),
		insert: mk(color.FgGreen),
		del:    mk(color.FgRed),
		err:    mk(color.FgRed, color.Bold),
	}
}

// line renders one diff line.
func (p palette) line(l dump.Line) string {
	switch l.Op {
	case dump.OpInsert:
		return p.insert("+ %s", l.Text)
	case dump.OpDelete:
		return p.del("- %s", l.Text)
	default:
		return "  " + l.Text
	}
}
