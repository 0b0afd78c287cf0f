// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A minimal server startup routine using opts: the listen address can
// come from --listen, from LISTEN_ADDR (handy for secret-style
// injection in orchestrated deployments), or fall back to the default.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/optrun/optrun/pkg/check"
	"github.com/optrun/optrun/pkg/opts"
)

func main() {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.Index(kv, "="); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}

	values, err := opts.Resolve(opts.Input{Args: os.Args[1:], Env: env},
		[]opts.Def{
			{Name: "listen", Switches: []string{"--listen", "-l"}, EnvVar: "LISTEN_ADDR", Default: ":8080"},
			{Name: "greeting", Switches: []string{"--greeting"}, Default: "Hello, world!",
				Validators: []opts.Validator{check.NonEmpty()}},
			{Name: "verbose", Switches: []string{"--verbose", "-v"}, Type: opts.TypeBoolean},
		})
	if err != nil {
		log.Fatal(err)
	}

	if values.Bool("verbose") {
		log.Printf("listening on %s", values.String("listen"))
	}
	http.ListenAndServe(values.String("listen"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, values.String("greeting"))
	}))
}
