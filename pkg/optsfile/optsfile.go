// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optsfile loads option definitions from YAML or TOML files.
// File-borne definitions cover the declarative fields only; validators
// and handlers are code and must be attached by the caller.
package optsfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/optrun/optrun/pkg/opts"
	"gopkg.in/yaml.v3"
)

// File is the on-disk schema: a single "options" list.
type File struct {
	Options []Option `yaml:"options" toml:"options"`
}

// Option mirrors the declarative fields of opts.Def.
type Option struct {
	Name     string   `yaml:"name" toml:"name"`
	Switches []string `yaml:"switches" toml:"switches"`
	Capture  string   `yaml:"capture" toml:"capture"` // "", "positional", or "rest"
	Env      string   `yaml:"env" toml:"env"`
	Type     string   `yaml:"type" toml:"type"`
	Default  any      `yaml:"default" toml:"default"`
	Required bool     `yaml:"required" toml:"required"`
}

// Load reads a definition file, dispatching on its extension:
// .yml/.yaml or .toml.
func Load(path string) ([]opts.Def, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch ext := filepath.Ext(path); ext {
	case ".yml", ".yaml":
		return LoadYAML(f)
	case ".toml":
		return LoadTOML(f)
	default:
		return nil, fmt.Errorf("unsupported definition file extension %q", ext)
	}
}

// LoadYAML decodes a YAML definition file.
func LoadYAML(r io.Reader) ([]opts.Def, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode yaml definitions: %w", err)
	}
	return file.defs()
}

// LoadTOML decodes a TOML definition file.
func LoadTOML(r io.Reader) ([]opts.Def, error) {
	var file File
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode toml definitions: %w", err)
	}
	return file.defs()
}

func (f File) defs() ([]opts.Def, error) {
	defs := make([]opts.Def, 0, len(f.Options))
	for _, o := range f.Options {
		def, err := o.def()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// def converts one file entry, rejecting unknown capture and type
// strings before the registry ever sees them.
func (o Option) def() (opts.Def, error) {
	var capture opts.Capture
	switch o.Capture {
	case "":
		capture = opts.CaptureNone
	case "positional":
		capture = opts.CapturePositional
	case "rest":
		capture = opts.CaptureRest
	default:
		return opts.Def{}, fmt.Errorf("option %q: unknown capture %q", o.Name, o.Capture)
	}
	switch opts.Type(o.Type) {
	case "", opts.TypeString, opts.TypeInteger, opts.TypeBoolean, opts.TypeList:
	default:
		return opts.Def{}, fmt.Errorf("option %q: unknown type %q", o.Name, o.Type)
	}
	return opts.Def{
		Name:     o.Name,
		Switches: o.Switches,
		Capture:  capture,
		EnvVar:   o.Env,
		Type:     opts.Type(o.Type),
		Default:  normalizeDefault(o.Default),
		Required: o.Required,
	}, nil
}

// normalizeDefault maps decoder-specific types onto the value shapes
// the engine produces: TOML integers arrive as int64 already, YAML
// ones as int; string lists arrive as []any from both.
func normalizeDefault(v any) any {
	switch d := v.(type) {
	case []any:
		lst := make([]string, 0, len(d))
		for _, e := range d {
			lst = append(lst, fmt.Sprint(e))
		}
		return lst
	default:
		return v
	}
}
