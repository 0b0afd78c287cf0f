// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opts resolves command-line arguments and environment
// variables into one typed value per logical option.
//
// A caller declares options once, as Def values, and gets back a
// single mapping regardless of whether the operator supplied a value
// as a flag or as an environment variable (the latter matters for
// secret injection in orchestrated deployments). Resolution collects
// every discoverable error in one pass instead of stopping at the
// first one, so a user fixing one typo sees all remaining problems.
//
// # One-shot usage
//
//	values, err := opts.Resolve(opts.Input{Args: os.Args[1:], Env: envMap},
//	    []opts.Def{
//	        {Name: "file", Switches: []string{"--file", "-f"}, EnvVar: "FILE", Required: true},
//	        {Name: "port", Switches: []string{"--port"}, Type: opts.TypeInteger, Default: 8080},
//	        {Name: "verbose", Switches: []string{"--verbose", "-v"}, Type: opts.TypeBoolean},
//	    })
//	if err != nil {
//	    var errs opts.Errors
//	    if errors.As(err, &errs) {
//	        // inspect individual records
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(values.String("file"), values.Int("port"))
//
// # Registry and engine
//
// For incremental registration or re-resolution, use Registry and
// Resolver directly:
//
//	reg := opts.NewRegistry()
//	reg.Register(opts.Def{Name: "file", Switches: []string{"--file"}})
//	res := opts.NewResolver(reg, opts.Input{Args: args, Env: env}).Result()
//	if !res.OK() {
//	    // res.Errs() holds the full collection
//	}
//
// The engine runs six phases in strict order: argv scan, environment
// fallback and defaults, type coercion, validation, handling, freeze.
// Argv values take precedence over environment values, which take
// precedence over defaults. Definitions registered after a resolution
// cause the next Result call to re-run every phase from scratch.
//
// # Switch syntax
//
//   - boolean switches: --verbose (bare form is true; the next token
//     is never consumed)
//   - value switches: --file=name or --file name (only the first "="
//     splits switch from value)
//   - list switches accumulate: --tag=a --tag=b resolves to [a b]
//   - a CapturePositional option absorbs unmatched tokens
//   - a CaptureRest option absorbs everything after a bare "--"
//
// # Validators and handlers
//
// Validators run before values are committed and return Accept,
// Reject, or Defer. Handlers post-process committed values and return
// Next or Done. Both chains stack across repeated registrations of the
// same name. Handlers run only when the whole resolution is error-free.
package opts
