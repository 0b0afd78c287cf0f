// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check provides stock validators and handlers for opts
// definitions. All of them are pure; none touches the filesystem,
// clock, or environment.
package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/optrun/optrun/pkg/opts"
)

// NonEmpty rejects empty string values and empty lists.
func NonEmpty() opts.Validator {
	return func(name string, value any, all opts.Values) opts.Verdict {
		switch v := value.(type) {
		case string:
			if v == "" {
				return opts.Reject(fmt.Sprintf("Option %q must not be empty.", name))
			}
		case []string:
			if len(v) == 0 {
				return opts.Reject(fmt.Sprintf("Option %q must not be empty.", name))
			}
		}
		return opts.Defer()
	}
}

// OneOf accepts string values from the given set and rejects
// everything else. Non-string values are deferred.
func OneOf(choices ...string) opts.Validator {
	return func(name string, value any, all opts.Values) opts.Verdict {
		s, ok := value.(string)
		if !ok {
			return opts.Defer()
		}
		for _, c := range choices {
			if s == c {
				return opts.Accept(nil)
			}
		}
		return opts.Reject(fmt.Sprintf("Option %q must be one of %s, got %q.",
			name, strings.Join(choices, ", "), s))
	}
}

// IntRange rejects integer values outside [min, max]. Non-integer
// values are deferred.
func IntRange(min, max int64) opts.Validator {
	return func(name string, value any, all opts.Values) opts.Verdict {
		var n int64
		switch v := value.(type) {
		case int64:
			n = v
		case int:
			n = int64(v)
		default:
			return opts.Defer()
		}
		if n < min || n > max {
			return opts.Reject(fmt.Sprintf("Option %q must be between %d and %d, got %d.",
				name, min, max, n))
		}
		return opts.Defer()
	}
}

// MatchRE rejects string values that do not match the pattern. The
// pattern is compiled once, at definition time; a bad pattern is a
// programming error and panics.
func MatchRE(pattern string) opts.Validator {
	re := regexp.MustCompile(pattern)
	return func(name string, value any, all opts.Values) opts.Verdict {
		s, ok := value.(string)
		if !ok {
			return opts.Defer()
		}
		if !re.MatchString(s) {
			return opts.Reject(fmt.Sprintf("Option %q must match %q, got %q.", name, pattern, s))
		}
		return opts.Defer()
	}
}

// SemVer rejects string values that do not parse as semantic versions.
func SemVer() opts.Validator {
	return func(name string, value any, all opts.Values) opts.Verdict {
		s, ok := value.(string)
		if !ok {
			return opts.Defer()
		}
		if _, err := semver.NewVersion(s); err != nil {
			return opts.Reject(fmt.Sprintf("Option %q must be a semantic version, got %q.", name, s))
		}
		return opts.Defer()
	}
}

// TrimSpace trims surrounding whitespace from string values.
func TrimSpace() opts.Handler {
	return func(name string, value any, all opts.Values) opts.HandlerResult {
		if s, ok := value.(string); ok {
			return opts.Next(strings.TrimSpace(s))
		}
		return opts.Next(value)
	}
}

// ToLower lower-cases string values.
func ToLower() opts.Handler {
	return func(name string, value any, all opts.Values) opts.HandlerResult {
		if s, ok := value.(string); ok {
			return opts.Next(strings.ToLower(s))
		}
		return opts.Next(value)
	}
}
