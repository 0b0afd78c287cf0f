// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/optrun/optrun/pkg/opts"
)

const testDefs = `
options:
  - name: file
    switches: ["--file", "-f"]
    env: FILE
    required: true
  - name: port
    switches: ["--port"]
    type: integer
    default: 8080
  - name: verbose
    switches: ["--verbose", "-v"]
    type: boolean
`

func writeDefs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defs.yml")
	if err := os.WriteFile(path, []byte(testDefs), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEnvFormat(t *testing.T) {
	var out strings.Builder
	args := []string{"--defs", writeDefs(t), "--format=env", "--", "--file=a.txt", "-v"}
	if err := run(args, nil, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "FILE=a.txt\nPORT=8080\nVERBOSE=true\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunTargetEnvFallback(t *testing.T) {
	var out strings.Builder
	env := map[string]string{"FILE": "from-env"}
	args := []string{"--defs", writeDefs(t), "--format=env"}
	if err := run(args, env, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "FILE=from-env") {
		t.Errorf("output = %q, want FILE=from-env", out.String())
	}
}

func TestRunReportsTargetErrors(t *testing.T) {
	args := []string{"--defs", writeDefs(t), "--", "--port=nope"}
	err := run(args, nil, &strings.Builder{})
	var errs opts.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("error = %v (%T), want opts.Errors", err, err)
	}
	// Both the bad port and the missing required file surface at once.
	wantCodes := []opts.Code{opts.CodeMissingArg, opts.CodeParse}
	for _, code := range wantCodes {
		if !errs.Has(code) {
			t.Errorf("errors = %v, missing %q", errs, code)
		}
	}
}

func TestRunRejectsBadFormat(t *testing.T) {
	args := []string{"--defs", writeDefs(t), "--format=xml"}
	err := run(args, nil, &strings.Builder{})
	var errs opts.Errors
	if !errors.As(err, &errs) || !errs.Has(opts.CodeValidation) {
		t.Fatalf("error = %v, want a VALIDATION error for --format", err)
	}
}

func TestRunRequiresDefs(t *testing.T) {
	err := run(nil, nil, &strings.Builder{})
	var errs opts.Errors
	if !errors.As(err, &errs) || !errs.Has(opts.CodeMissingArg) {
		t.Fatalf("error = %v, want MISSING_ARG for --defs", err)
	}
}

func TestEnvMap(t *testing.T) {
	got := envMap([]string{"A=1", "B=x=y", "MALFORMED", "=nokey"})
	want := map[string]string{"A": "1", "B": "x=y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("envMap mismatch (-want +got):\n%s", diff)
	}
}
