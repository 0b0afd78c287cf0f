// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opts

// Type declares how a raw value is coerced. The set is open on purpose
// so that a definition carrying an unrecognized type is diagnosable at
// coercion time (TYPE_UNKNOWN) instead of being silently normalized.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeList    Type = "list"
)

// Capture selects how an option acquires tokens that no switch claims.
type Capture int

const (
	// CaptureNone options are matched by their switches only.
	CaptureNone Capture = iota
	// CapturePositional options absorb every token not claimed by any
	// declared switch. At most one may exist per registry.
	CapturePositional
	// CaptureRest options absorb every token after a bare "--". At
	// most one may exist per registry.
	CaptureRest
)

// Def describes one logical option. The same name may be registered
// multiple times; the first registration supplies the parse-affecting
// fields (Switches, Capture, EnvVar, Type, Default, Required) and
// every registration contributes to the validator and handler chains.
type Def struct {
	// Name keys the option in the resolved value mapping. Required.
	Name string
	// Switches are the literal argv tokens that identify the option,
	// e.g. "--file", "-f". Matched by exact string equality.
	Switches []string
	// Capture routes otherwise-unclaimed tokens to this option.
	Capture Capture
	// EnvVar names an environment variable consulted only when no
	// argv token matched.
	EnvVar string
	// Type defaults to TypeList for capture options, TypeString
	// otherwise.
	Type Type
	// Default is a pre-typed value adopted verbatim when neither argv
	// nor the environment supplies one. It bypasses coercion.
	Default any
	// Required records a MISSING_ARG error when no value and no
	// default is found.
	Required bool

	Validators []Validator
	Handlers   []Handler
}

// Values is the resolved mapping from option name to typed value:
// string, int64, bool, or []string (defaults are adopted verbatim and
// may carry whatever type the caller configured). A Values returned
// from resolution must be treated as read-only; a new resolution
// produces a new mapping rather than mutating an old one.
type Values map[string]any

// Has reports whether a value was resolved for name.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the value for name as a string, or "" when absent or
// not a string.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the value for name as an int64. Defaults configured as
// plain ints are converted.
func (v Values) Int(name string) int64 {
	switch n := v[name].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

// Bool returns the value for name as a bool, or false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// List returns the value for name as a string slice, or nil.
func (v Values) List(name string) []string {
	l, _ := v[name].([]string)
	return l
}

// Registry accumulates option definitions and indexes them for the
// resolution engine. Definitions for the same name stack rather than
// overwrite, which lets later registrations extend an option's
// validator and handler chains. Names iterate in first-registration
// order, which keeps error and handler ordering deterministic.
type Registry struct {
	names []string
	defs  map[string][]Def

	positionalName string
	restName       string

	// gen moves on every registration; the engine re-resolves from
	// scratch when it observes a stale generation.
	gen int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string][]Def)}
}

// Register appends def under def.Name, preserving any definitions
// already registered for that name. Zero fields are normalized: Type
// defaults to TypeList for capture options and TypeString otherwise.
// A second positional or rest capture anywhere in the registry is a
// configuration error.
func (r *Registry) Register(def Def) error {
	if def.Name == "" {
		return &ConfigError{Reason: "definition has no name"}
	}
	if def.Type == "" {
		if def.Capture != CaptureNone {
			def.Type = TypeList
		} else {
			def.Type = TypeString
		}
	}
	switch def.Capture {
	case CapturePositional:
		if r.positionalName != "" {
			return &ConfigError{Option: def.Name, Reason: "a positional option is already registered (" + r.positionalName + ")"}
		}
		r.positionalName = def.Name
	case CaptureRest:
		if r.restName != "" {
			return &ConfigError{Option: def.Name, Reason: "a rest capture option is already registered (" + r.restName + ")"}
		}
		r.restName = def.Name
	}
	if _, ok := r.defs[def.Name]; !ok {
		r.names = append(r.names, def.Name)
	}
	r.defs[def.Name] = append(r.defs[def.Name], def)
	r.gen++
	return nil
}

// RegisterMany registers each definition in order, stopping at the
// first configuration error.
func (r *Registry) RegisterMany(defs []Def) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the unique option names in first-registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Defs returns the full definition stack registered under name, in
// registration order.
func (r *Registry) Defs(name string) []Def {
	return append([]Def(nil), r.defs[name]...)
}

// parseDef returns the definition whose parse-affecting fields govern
// the named option: the first one registered.
func (r *Registry) parseDef(name string) Def {
	return r.defs[name][0]
}

// validators returns the validator chain for name, concatenated across
// stacked definitions in registration order.
func (r *Registry) validators(name string) []Validator {
	var chain []Validator
	for _, def := range r.defs[name] {
		chain = append(chain, def.Validators...)
	}
	return chain
}

// handlers returns the handler chain for name, concatenated across
// stacked definitions in registration order.
func (r *Registry) handlers(name string) []Handler {
	var chain []Handler
	for _, def := range r.defs[name] {
		chain = append(chain, def.Handlers...)
	}
	return chain
}
