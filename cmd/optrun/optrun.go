// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command optrun resolves a target command line against a declarative
// option definition file and prints the resolved value mapping. It is
// mainly a debugging aid for definition files: feed it the argv and
// environment a process would start with and see exactly what the
// process would resolve.
//
// Usage:
//
//	optrun --defs options.yml [--format=table|json|env] [--apply] [--out FILE] -- <target argv...>
//
// optrun's own flags are declared as option definitions and resolved
// by the same engine it demonstrates.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/optrun/optrun/pkg/check"
	"github.com/optrun/optrun/pkg/envstore"
	"github.com/optrun/optrun/pkg/opts"
	"github.com/optrun/optrun/pkg/optsfile"
)

func selfDefs() []opts.Def {
	return []opts.Def{
		{
			Name:       "defs",
			Switches:   []string{"--defs", "-d"},
			EnvVar:     "OPTRUN_DEFS",
			Required:   true,
			Validators: []opts.Validator{check.NonEmpty()},
		},
		{
			Name:       "format",
			Switches:   []string{"--format"},
			Default:    "table",
			Validators: []opts.Validator{check.OneOf("table", "json", "env")},
		},
		{
			Name:     "apply",
			Switches: []string{"--apply"},
			Type:     opts.TypeBoolean,
		},
		{
			Name:     "out",
			Switches: []string{"--out"},
		},
		{
			Name:    "target",
			Capture: opts.CaptureRest,
			Default: []string{},
		},
	}
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], envMap(os.Environ()), os.Stdout); err != nil {
		var errs opts.Errors
		if errors.As(err, &errs) {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[%s]", string(e.Code)), e.Message)
			}
		} else {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}

func run(args []string, env map[string]string, out io.Writer) error {
	self, err := opts.Resolve(opts.Input{Args: args, Env: env}, selfDefs())
	if err != nil {
		return err
	}

	defs, err := optsfile.Load(self.String("defs"))
	if err != nil {
		return err
	}

	values, err := opts.Resolve(opts.Input{Args: self.List("target"), Env: env}, defs)
	if err != nil {
		return err
	}

	switch self.String("format") {
	case "json":
		if err := printJSON(out, values); err != nil {
			return err
		}
	case "env":
		if err := envstore.Marshal(out, values); err != nil {
			return err
		}
	default:
		printTable(out, values)
	}

	if name := self.String("out"); name != "" {
		if err := envstore.Write(name, values); err != nil {
			return err
		}
		log.Printf("wrote %s", name)
	}
	if self.Bool("apply") {
		if err := envstore.Apply(envstore.OS(), values); err != nil {
			return err
		}
	}
	return nil
}

func printTable(out io.Writer, values opts.Values) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "OPTION\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, envstore.Format(values[name]))
	}
	w.Flush()
}

func printJSON(out io.Writer, values opts.Values) error {
	j, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", j)
	return err
}

// envMap splits KEY=VALUE entries the way os.Environ produces them.
// Only the first "=" separates key from value.
func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.Index(kv, "="); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
