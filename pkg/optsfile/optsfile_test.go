// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optsfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/optrun/optrun/pkg/opts"
)

const yamlDefs = `
options:
  - name: file
    switches: ["--file", "-f"]
    env: FILE
    required: true
  - name: port
    switches: ["--port"]
    type: integer
    default: 8080
  - name: tags
    switches: ["--tag"]
    type: list
    default: ["a", "b"]
  - name: args
    capture: positional
`

const tomlDefs = `
[[options]]
name = "file"
switches = ["--file", "-f"]
env = "FILE"
required = true

[[options]]
name = "port"
switches = ["--port"]
type = "integer"
default = 8080

[[options]]
name = "tags"
switches = ["--tag"]
type = "list"
default = ["a", "b"]

[[options]]
name = "args"
capture = "positional"
`

func TestLoadYAML(t *testing.T) {
	defs, err := LoadYAML(strings.NewReader(yamlDefs))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	checkDefs(t, defs)
}

func TestLoadTOML(t *testing.T) {
	defs, err := LoadTOML(strings.NewReader(tomlDefs))
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	checkDefs(t, defs)
}

// checkDefs verifies the loaded definitions resolve correctly when
// actually used, which exercises the whole file-to-engine path.
func checkDefs(t *testing.T, defs []opts.Def) {
	t.Helper()
	if len(defs) != 4 {
		t.Fatalf("got %d defs, want 4", len(defs))
	}
	if defs[0].Name != "file" || !defs[0].Required || defs[0].EnvVar != "FILE" {
		t.Errorf("file def = %+v, want required with env FILE", defs[0])
	}
	if defs[3].Capture != opts.CapturePositional {
		t.Errorf("args capture = %v, want CapturePositional", defs[3].Capture)
	}

	values, err := opts.Resolve(opts.Input{
		Args: []string{"--tag=c", "extra.txt"},
		Env:  map[string]string{"FILE": "from-env"},
	}, defs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := values.String("file"); got != "from-env" {
		t.Errorf("file = %q, want %q", got, "from-env")
	}
	if got := values.Int("port"); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
	if diff := cmp.Diff([]string{"c"}, values.List("tags")); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"extra.txt"}, values.List("args")); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "defs.yml")
	if err := os.WriteFile(yml, []byte(yamlDefs), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(yml); err != nil {
		t.Errorf("Load(%q) failed: %v", yml, err)
	}

	tml := filepath.Join(dir, "defs.toml")
	if err := os.WriteFile(tml, []byte(tomlDefs), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tml); err != nil {
		t.Errorf("Load(%q) failed: %v", tml, err)
	}

	bad := filepath.Join(dir, "defs.ini")
	if err := os.WriteFile(bad, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load accepted an unsupported extension")
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("options:\n  - name: w\n    type: widget\n"))
	if err == nil || !strings.Contains(err.Error(), "widget") {
		t.Errorf("err = %v, want unknown type error naming widget", err)
	}
}

func TestLoadRejectsUnknownCapture(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("options:\n  - name: w\n    capture: greedy\n"))
	if err == nil || !strings.Contains(err.Error(), "greedy") {
		t.Errorf("err = %v, want unknown capture error naming greedy", err)
	}
}
