// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opts

import (
	"fmt"
	"strconv"
	"strings"
)

// Default boolean word lists, matched case-insensitively during
// coercion. Callers may override both via Input.
var (
	DefaultTruthyWords = []string{"true", "yes", "y", "on", "1", "high", "h", "da", "ja", "oui", "si", "sí"}
	DefaultFalseyWords = []string{"false", "no", "n", "off", "0", "low", "l", "nyet", "niet", "geen", "nein", "non"}
)

// Input carries the raw material for one resolution. The engine never
// reads the process argv or environment itself; the caller supplies
// both as already-materialized snapshots, which keeps the engine pure
// and lets tests feed it anything.
type Input struct {
	// Args is the argument token stream, normally os.Args[1:].
	Args []string
	// Env is the environment mapping, normally parsed from os.Environ().
	Env map[string]string
	// TruthyWords and FalseyWords override the default boolean word
	// lists when non-nil.
	TruthyWords []string
	FalseyWords []string
}

// Resolver executes the multi-phase resolution algorithm over an
// Input, against a Registry. It is synchronous and single-threaded;
// concurrent use of one Resolver is not supported.
type Resolver struct {
	reg    *Registry
	in     Input
	truthy map[string]bool
	falsey map[string]bool

	res *Result
	gen int
}

// NewResolver binds a registry and input. Resolution runs lazily on
// the first Result call.
func NewResolver(reg *Registry, in Input) *Resolver {
	truthy := in.TruthyWords
	if truthy == nil {
		truthy = DefaultTruthyWords
	}
	falsey := in.FalseyWords
	if falsey == nil {
		falsey = DefaultFalseyWords
	}
	return &Resolver{
		reg:    reg,
		in:     in,
		truthy: wordSet(truthy),
		falsey: wordSet(falsey),
	}
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Result is the frozen outcome of one resolution: the typed value
// mapping and the full error collection. A result is superseded, not
// mutated, when the registry changes and resolution re-runs.
type Result struct {
	values Values
	errs   Errors
}

// Values returns the resolved value mapping. Callers must treat it as
// read-only.
func (r *Result) Values() Values { return r.values }

// Errs returns the error collection, empty iff resolution succeeded.
func (r *Result) Errs() Errors { return r.errs }

// OK reports whether resolution produced zero errors.
func (r *Result) OK() bool { return len(r.errs) == 0 }

// Result returns the memoized resolution outcome, re-running every
// phase from scratch if definitions were registered since the last
// run. There is no incremental re-resolution.
func (r *Resolver) Result() *Result {
	if r.res != nil && r.gen == r.reg.gen {
		return r.res
	}
	r.res = r.run()
	r.gen = r.reg.gen
	return r.res
}

// state is the per-run scratch. raw holds un-coerced values keyed by
// option name (string, []string, or the literal true for bare boolean
// switches); vals holds the post-coercion typed values.
type state struct {
	raw        map[string]any
	vals       Values
	src        map[string]Source
	skipCoerce map[string]bool
	errored    map[string]bool
	errs       Errors
}

func (r *Resolver) run() *Result {
	st := &state{
		raw:        make(map[string]any),
		vals:       make(Values),
		src:        make(map[string]Source),
		skipCoerce: make(map[string]bool),
		errored:    make(map[string]bool),
	}

	r.scanArgs(st)
	r.applyEnvAndDefaults(st)
	r.coerce(st)
	r.validate(st)
	r.handle(st)

	values := make(Values, len(st.vals))
	for name, v := range st.vals {
		values[name] = v
	}
	return &Result{values: values, errs: st.errs}
}

// scanArgs is phase 1: walk the token stream left to right, matching
// tokens against registered switches with lookahead consumption for
// value-bearing switches.
func (r *Resolver) scanArgs(st *state) {
	args := r.in.Args
	for i := 0; i < len(args); i++ {
		tok := args[i]

		// A bare "--" hands everything after it to the rest capture
		// option. Without one, "--" routes like any unmatched token.
		if tok == "--" && r.reg.restName != "" {
			st.raw[r.reg.restName] = append([]string{}, args[i+1:]...)
			st.src[r.reg.restName] = SourceArgv
			break
		}

		// Only the first "=" splits switch from value; the value may
		// itself contain "=".
		cand, val, hasVal := tok, "", false
		if j := strings.Index(tok, "="); j != -1 {
			cand, val, hasVal = tok[:j], tok[j+1:], true
		}

		name, def, ok := r.matchSwitch(cand)
		if !ok {
			if r.reg.positionalName != "" {
				lst, _ := st.raw[r.reg.positionalName].([]string)
				st.raw[r.reg.positionalName] = append(lst, tok)
				st.src[r.reg.positionalName] = SourceArgv
				continue
			}
			st.errs = append(st.errs, &Error{
				Code:     CodeUnknownArg,
				Message:  fmt.Sprintf("Unknown argument %q.", tok),
				Source:   SourceArgv,
				RawToken: tok,
			})
			continue
		}

		var raw any
		switch {
		case def.Type == TypeBoolean && !hasVal:
			// Bare boolean switches are the literal true and never
			// consume the next token.
			raw = true
		case hasVal:
			raw = val
		default:
			if i+1 >= len(args) {
				st.errs = append(st.errs, &Error{
					Code:     CodeParse,
					Message:  fmt.Sprintf("Argument %q expects a value but the argument list ended.", tok),
					Option:   name,
					Source:   SourceArgv,
					RawToken: tok,
				})
				continue
			}
			i++
			raw = args[i]
		}

		if def.Type == TypeList {
			s, _ := raw.(string)
			lst, _ := st.raw[name].([]string)
			st.raw[name] = append(lst, s)
		} else {
			// Last argv occurrence wins for non-list options.
			st.raw[name] = raw
		}
		st.src[name] = SourceArgv
	}
}

// matchSwitch finds the first option in registry order whose switch
// list contains cand, by exact string equality.
func (r *Resolver) matchSwitch(cand string) (string, Def, bool) {
	for _, name := range r.reg.names {
		def := r.reg.parseDef(name)
		for _, sw := range def.Switches {
			if sw == cand {
				return name, def, true
			}
		}
	}
	return "", Def{}, false
}

// applyEnvAndDefaults is phase 2: for every option argv left unvalued,
// consult the environment, then the configured default, then the
// required flag, in that order.
func (r *Resolver) applyEnvAndDefaults(st *state) {
	for _, name := range r.reg.names {
		if _, ok := st.raw[name]; ok {
			continue
		}
		def := r.reg.parseDef(name)
		if def.EnvVar != "" {
			if v, ok := r.in.Env[def.EnvVar]; ok {
				// Environment variables cannot natively carry
				// multiple values; a list option gets a one-element
				// list.
				if def.Type == TypeList {
					st.raw[name] = []string{v}
				} else {
					st.raw[name] = v
				}
				st.src[name] = SourceEnv
				continue
			}
		}
		if def.Default != nil {
			// Defaults are pre-typed and adopted verbatim.
			st.raw[name] = def.Default
			st.src[name] = SourceDefault
			st.skipCoerce[name] = true
			continue
		}
		if def.Required {
			st.errs = append(st.errs, &Error{
				Code:    CodeMissingArg,
				Message: missingMessage(def),
				Option:  name,
			})
		}
	}
}

// missingMessage reproduces the exact required-option wording: the
// switch clause varies with the switch count and the env var clause
// replaces the trailing period when both sources exist.
func missingMessage(def Def) string {
	if len(def.Switches) == 0 {
		if def.EnvVar != "" {
			return fmt.Sprintf("Missing required environment variable %q.", def.EnvVar)
		}
		return fmt.Sprintf("Missing required argument %q.", def.Name)
	}
	var clause string
	switch len(def.Switches) {
	case 1:
		clause = fmt.Sprintf("Missing required argument %q", def.Switches[0])
	case 2:
		clause = fmt.Sprintf("Missing required arguments %q or %q", def.Switches[0], def.Switches[1])
	default:
		quoted := make([]string, len(def.Switches))
		for i, sw := range def.Switches {
			quoted[i] = strconv.Quote(sw)
		}
		clause = fmt.Sprintf("Missing required arguments %s, or %s",
			strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
	}
	if def.EnvVar != "" {
		return clause + fmt.Sprintf(" or environment variable %q.", def.EnvVar)
	}
	return clause + "."
}

// coerce is phase 3: convert every discovered raw value to its
// declared type. A failure here blocks validation and handling for
// that option only; every other option keeps going.
func (r *Resolver) coerce(st *state) {
	for _, name := range r.reg.names {
		raw, ok := st.raw[name]
		if !ok {
			continue
		}
		if st.skipCoerce[name] {
			st.vals[name] = raw
			continue
		}
		def := r.reg.parseDef(name)
		switch def.Type {
		case TypeString:
			st.vals[name] = raw
		case TypeBoolean:
			switch v := raw.(type) {
			case bool:
				st.vals[name] = v
			case string:
				word := strings.ToLower(v)
				switch {
				case r.truthy[word]:
					st.vals[name] = true
				case r.falsey[word]:
					st.vals[name] = false
				default:
					st.errs = append(st.errs, &Error{
						Code:     CodeParse,
						Message:  fmt.Sprintf("Value %q for option %q is not a recognized boolean.", v, name),
						Option:   name,
						Source:   st.src[name],
						RawValue: v,
					})
					st.errored[name] = true
				}
			}
		case TypeInteger:
			s, _ := raw.(string)
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				st.errs = append(st.errs, &Error{
					Code:     CodeParse,
					Message:  fmt.Sprintf("Value %q for option %q is not an integer.", s, name),
					Option:   name,
					Source:   st.src[name],
					RawValue: s,
				})
				st.errored[name] = true
				continue
			}
			st.vals[name] = n
		case TypeList:
			switch v := raw.(type) {
			case []string:
				st.vals[name] = v
			case string:
				st.vals[name] = []string{v}
			default:
				st.vals[name] = []string{fmt.Sprint(v)}
			}
		default:
			st.errs = append(st.errs, &Error{
				Code:     CodeTypeUnknown,
				Message:  fmt.Sprintf("Option %q declares unknown type %q.", name, def.Type),
				Option:   name,
				Source:   st.src[name],
				RawValue: fmt.Sprint(raw),
			})
			st.errored[name] = true
		}
	}
}

// validate is phase 4: walk every option's validator chain, stacked
// across definitions. Accept commits (optionally replacing), Reject
// records a VALIDATION error and stops that option's chain, Defer
// passes to the next validator. An all-defer chain passes implicitly.
func (r *Resolver) validate(st *state) {
	for _, name := range r.reg.names {
		if st.errored[name] {
			continue
		}
		value, ok := st.vals[name]
		if !ok {
			continue
		}
	chain:
		for _, fn := range r.reg.validators(name) {
			verdict := fn(name, value, st.vals)
			switch verdict.kind {
			case verdictAccept:
				if verdict.value != nil {
					st.vals[name] = verdict.value
				}
				break chain
			case verdictReject:
				st.errs = append(st.errs, &Error{
					Code:    CodeValidation,
					Message: verdict.message,
					Option:  name,
					Source:  st.src[name],
				})
				st.errored[name] = true
				break chain
			}
		}
	}
}

// handle is phase 5: run the handler chains. The gate is global: any
// error anywhere suppresses every handler, for every option.
func (r *Resolver) handle(st *state) {
	if len(st.errs) > 0 {
		return
	}
	for _, name := range r.reg.names {
		value, ok := st.vals[name]
		if !ok {
			continue
		}
		for _, fn := range r.reg.handlers(name) {
			res := fn(name, value, st.vals)
			value = res.value
			st.vals[name] = value
			if res.done {
				break
			}
		}
	}
}

// Resolve is the one-shot façade: it builds a registry from the given
// definition batches, resolves once, and returns the value mapping.
// Any non-empty error collection is returned as an Errors value; a
// malformed definition surfaces as a *ConfigError.
func Resolve(in Input, batches ...[]Def) (Values, error) {
	reg := NewRegistry()
	for _, batch := range batches {
		if err := reg.RegisterMany(batch); err != nil {
			return nil, err
		}
	}
	res := NewResolver(reg, in).Result()
	if !res.OK() {
		return nil, res.Errs()
	}
	return res.Values(), nil
}
