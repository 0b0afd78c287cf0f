// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterRejectsEmptyName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Def{}); err == nil {
		t.Error("Register accepted a definition with no name")
	}
}

func TestRegisterRejectsSecondPositional(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "a", Capture: CapturePositional})
	err := reg.Register(Def{Name: "b", Capture: CapturePositional})
	if err == nil {
		t.Fatal("Register accepted a second positional definition")
	}
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Option != "b" {
		t.Errorf("Option = %q, want %q", cfgErr.Option, "b")
	}
}

func TestRegisterRejectsSecondRest(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "a", Capture: CaptureRest})
	if err := reg.Register(Def{Name: "b", Capture: CaptureRest}); err == nil {
		t.Error("Register accepted a second rest capture definition")
	}
}

func TestRegisterAllowsPositionalAndRestTogether(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "a", Capture: CapturePositional})
	mustRegister(t, reg, Def{Name: "b", Capture: CaptureRest})
}

func TestTypeDefaults(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "plain", Switches: []string{"--plain"}})
	mustRegister(t, reg, Def{Name: "pos", Capture: CapturePositional})
	mustRegister(t, reg, Def{Name: "rest", Capture: CaptureRest})

	tests := []struct {
		name string
		want Type
	}{
		{"plain", TypeString},
		{"pos", TypeList},
		{"rest", TypeList},
	}
	for _, tt := range tests {
		if got := reg.parseDef(tt.name).Type; got != tt.want {
			t.Errorf("%s type = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNamesInFirstRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "c", Switches: []string{"--c"}})
	mustRegister(t, reg, Def{Name: "a", Switches: []string{"--a"}})
	mustRegister(t, reg, Def{Name: "c"}) // stacked, no new name
	mustRegister(t, reg, Def{Name: "b", Switches: []string{"--b"}})

	if diff := cmp.Diff([]string{"c", "a", "b"}, reg.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstDefinitionWinsForParseFields(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, Def{Name: "n", Switches: []string{"--n"}, Type: TypeInteger, Default: 1})
	mustRegister(t, reg, Def{Name: "n", Switches: []string{"--m"}, Type: TypeString, Default: "x", Required: true})

	def := reg.parseDef("n")
	if def.Type != TypeInteger {
		t.Errorf("type = %q, want %q", def.Type, TypeInteger)
	}
	if def.Default != 1 {
		t.Errorf("default = %v, want 1", def.Default)
	}
	if def.Required {
		t.Error("required = true, want false from first definition")
	}
	if got := len(reg.Defs("n")); got != 2 {
		t.Errorf("Defs stack length = %d, want 2", got)
	}
}
