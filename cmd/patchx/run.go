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
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"dirpx.dev/patchx"
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/dump"
	"dirpx.dev/patchx/patch"
	"dirpx.dev/patchx/target"
)

var (
	runKeepGoing bool
	runFinalDump bool
)

func init() {
	rootCmd.AddCommand(newRunCmd(), newDescribeCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario and diff the object after each step",
		Long: `The run command builds the scenario's object and patches, then executes its steps.

Steps:
  apply NAME | revert NAME | release NAME
  enable | disable                 apply/revert every registered patch
  toggle.start NAME[/ID] | toggle.stop NAME[/ID]
  set KEY VALUE                    plain assignment on the object
  freeze | seal | preventExtensions
  dump                             print the object and every patch

Example:
  patchx run scenario.yaml
  patchx run scenario.yaml --keep-going --color never`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			pal, err := outputPalette(cmd)
			if err != nil {
				return err
			}
			return runScenario(cmd.OutOrStdout(), sc, runOptions{keepGoing: runKeepGoing, finalDump: runFinalDump, pal: pal})
		},
	}
	cmd.Flags().BoolVar(&runKeepGoing, "keep-going", false, "report failing steps and continue")
	cmd.Flags().BoolVar(&runFinalDump, "final-dump", false, "print the full dump after the last step")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <scenario.yaml>",
		Short: "Show the patches of a scenario and the keys they conflict with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			r, err := newRunner(cmd.OutOrStdout(), sc, runOptions{pal: newPalette(false)})
			if err != nil {
				return err
			}
			defer r.close()
			return r.dump()
		},
	}
}

func outputPalette(cmd *cobra.Command) (palette, error) {
	mode, _ := cmd.Flags().GetString("color")
	on, err := colorEnabled(mode, os.Stdout)
	if err != nil {
		return palette{}, err
	}
	return newPalette(on), nil
}

type runOptions struct {
	keepGoing bool
	finalDump bool
	pal       palette
}

// runner owns the object and patches of one scenario replay.
type runner struct {
	out     io.Writer
	opts    runOptions
	obj     *target.Object
	patches map[string]*patch.Patch
	order   []string
	toggles map[string]*patch.Toggle
}

func runScenario(w io.Writer, sc *Scenario, opts runOptions) error {
	r, err := newRunner(w, sc, opts)
	if err != nil {
		return err
	}
	defer r.close()

	if sc.Name != "" {
		fmt.Fprintln(w, opts.pal.header("# %s", sc.Name))
	}
	for i, step := range sc.Steps {
		if err := r.step(step); err != nil {
			fmt.Fprintln(w, opts.pal.err("! step %d (%s): %v", i+1, step, err))
			if !opts.keepGoing {
				return fmt.Errorf("step %d (%s): %w", i+1, step, err)
			}
		}
	}
	if opts.finalDump {
		return r.dump()
	}
	return nil
}

func newRunner(w io.Writer, sc *Scenario, opts runOptions) (*runner, error) {
	r := &runner{
		out:     w,
		opts:    opts,
		obj:     target.ObjectFrom(sc.Object),
		patches: make(map[string]*patch.Patch, len(sc.Patches)),
		toggles: make(map[string]*patch.Toggle),
	}
	for _, spec := range sc.Patches {
		p, err := patchx.New(r.obj, spec.entries(),
			patch.WithName(spec.Name),
			patch.WithPreventRevert(spec.PreventRevert))
		if err != nil {
			r.close()
			return nil, fmt.Errorf("patch %q: %w", spec.Name, err)
		}
		r.patches[spec.Name] = p
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

// close drops the scenario's patches from the global registry.
func (r *runner) close() {
	for _, name := range r.order {
		r.patches[name].Release()
	}
}

func (r *runner) step(step string) error {
	fields := strings.Fields(step)
	if len(fields) == 0 {
		return nil
	}
	fmt.Fprintln(r.out, r.opts.pal.header("== %s", step))

	before := dump.Capture(r.obj)
	if err := r.exec(fields[0], fields[1:]); err != nil {
		return err
	}
	lines, err := dump.Diff(before, dump.Capture(r.obj))
	if err != nil {
		return err
	}
	if !dump.Changed(lines) {
		fmt.Fprintln(r.out, "  (no change)")
		return nil
	}
	for _, l := range lines {
		if l.Op != dump.OpEqual {
			fmt.Fprintln(r.out, r.opts.pal.line(l))
		}
	}
	return nil
}

func (r *runner) exec(verb string, args []string) error {
	switch verb {
	case "apply", "revert", "release":
		p, err := r.patch(args)
		if err != nil {
			return err
		}
		switch verb {
		case "apply":
			return p.Apply()
		case "revert":
			return p.Revert()
		default:
			p.Release()
			return nil
		}
	case "enable":
		return patchx.EnableFor(r.obj)
	case "disable":
		return patchx.DisableFor(r.obj)
	case "toggle.start", "toggle.stop":
		t, err := r.toggle(args)
		if err != nil {
			return err
		}
		if verb == "toggle.start" {
			return t.Start()
		}
		return t.Stop()
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("set wants KEY VALUE")
		}
		var v any
		if err := yaml.Unmarshal([]byte(strings.Join(args[1:], " ")), &v); err != nil {
			return fmt.Errorf("set %s: %w", args[0], err)
		}
		return r.obj.Set(apis.Key(args[0]), v)
	case "freeze":
		r.obj.Freeze()
		return nil
	case "seal":
		r.obj.Seal()
		return nil
	case "preventExtensions":
		r.obj.PreventExtensions()
		return nil
	case "dump":
		return r.dump()
	}
	return fmt.Errorf("unknown step %q", verb)
}

func (r *runner) patch(args []string) (*patch.Patch, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want exactly one patch name")
	}
	p, ok := r.patches[args[0]]
	if !ok {
		return nil, fmt.Errorf("unknown patch %q", args[0])
	}
	return p, nil
}

// toggle returns the toggle named NAME[/ID], creating it on first use.
func (r *runner) toggle(args []string) (*patch.Toggle, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want exactly one toggle name")
	}
	name, _, _ := strings.Cut(args[0], "/")
	if t, ok := r.toggles[args[0]]; ok {
		return t, nil
	}
	p, err := r.patch([]string{name})
	if err != nil {
		return nil, err
	}
	t := p.CreateToggle()
	r.toggles[args[0]] = t
	return t, nil
}

func (r *runner) dump() error {
	obj, err := dump.YAML(dump.Capture(r.obj))
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.opts.pal.header("-- object"))
	fmt.Fprint(r.out, string(obj))
	for _, name := range r.order {
		view, err := dump.YAML(dump.Describe(r.patches[name]))
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.opts.pal.header("-- patch %s", name))
		fmt.Fprint(r.out, string(view))
	}
	return nil
}
