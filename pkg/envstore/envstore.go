// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envstore publishes resolved option values into an
// environment-like store or an env file. Publishing is an explicit
// call the caller makes after resolution, never a side effect of
// resolving.
package envstore

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/optrun/optrun/pkg/opts"
)

// Store is anything that accepts KEY=VALUE pairs.
type Store interface {
	Setenv(key, value string) error
}

type osStore struct{}

func (osStore) Setenv(key, value string) error { return os.Setenv(key, value) }

// OS returns a Store backed by the process environment.
func OS() Store { return osStore{} }

// Apply publishes every resolved value into st. Keys are the option
// names upper-cased with dashes mapped to underscores; keys are
// applied in sorted order so failures are deterministic.
func Apply(st Store, values opts.Values) error {
	for _, name := range sortedNames(values) {
		if err := st.Setenv(Key(name), Format(values[name])); err != nil {
			return fmt.Errorf("failed to set %s: %w", Key(name), err)
		}
	}
	return nil
}

// Key converts an option name into its environment key form.
func Key(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Format renders a resolved value in env form. Lists are comma-joined
// since env values cannot carry multiple values.
func Format(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}

// Write writes an env file with the given name holding every resolved
// value.
func Write(name string, values opts.Values) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, values); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Marshal writes KEY=VALUE lines to o, one per resolved value, in
// sorted key order.
func Marshal(o io.Writer, values opts.Values) error {
	for _, name := range sortedNames(values) {
		if _, err := fmt.Fprintf(o, "%s=%s\n", Key(name), Format(values[name])); err != nil {
			return err
		}
	}
	return nil
}

func sortedNames(values opts.Values) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
