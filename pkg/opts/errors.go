// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opts

import (
	"fmt"
	"strings"
)

// Code identifies the category of a resolution error. The values are
// stable identifiers intended for programmatic handling, not display.
type Code string

const (
	// CodeParse means a raw value was present but could not be coerced
	// to the option's declared type.
	CodeParse Code = "PARSE"
	// CodeTypeUnknown means an option declared a type the engine does
	// not recognize.
	CodeTypeUnknown Code = "TYPE_UNKNOWN"
	// CodeValidation means a validator rejected the coerced value.
	CodeValidation Code = "VALIDATION"
	// CodeUnknownArg means a token matched no switch and no positional
	// sink exists.
	CodeUnknownArg Code = "UNKNOWN_ARG"
	// CodeMissingArg means a required option was absent from both argv
	// and the environment and had no default.
	CodeMissingArg Code = "MISSING_ARG"
)

// Source names where a raw value came from.
type Source string

const (
	SourceArgv    Source = "argv"
	SourceEnv     Source = "env"
	SourceDefault Source = "default"
)

// Error records one problem discovered during resolution. Resolution
// collects every discoverable Error instead of stopping at the first.
type Error struct {
	Code     Code
	Message  string
	Option   string // logical option name, if one was identified
	Source   Source // origin of the raw value, if any
	RawValue string // the un-coercible raw value, for PARSE/TYPE_UNKNOWN
	RawToken string // the literal offending argv token, if any
}

func (e *Error) Error() string { return e.Message }

// Errors is the full error collection of one resolution. It is empty
// iff the resolution succeeded. Errors itself implements error so the
// façade can return the structured collection directly.
type Errors []*Error

func (es Errors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByOption returns the errors recorded for the named option.
func (es Errors) ByOption(name string) Errors {
	var out Errors
	for _, e := range es {
		if e.Option == name {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether any error in the collection carries the code.
func (es Errors) Has(code Code) bool {
	for _, e := range es {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ConfigError reports a malformed registry configuration, such as a
// second positional definition. It is a programming error distinct
// from the per-option Error records and is returned eagerly from
// Register rather than collected during resolution.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid option configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for option %q: %s", e.Option, e.Reason)
}
