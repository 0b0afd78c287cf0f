// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opts

// Validator inspects a coerced value before it is committed. It
// receives the option name, the current value, and a read-only view of
// every value coerced so far, and returns one of Accept, Reject, or
// Defer. Validators must be pure.
type Validator func(name string, value any, all Values) Verdict

// Handler post-processes a committed value. It returns Next to replace
// the value and continue the chain, or Done to replace it and stop.
// Handlers must be pure.
type Handler func(name string, value any, all Values) HandlerResult

type verdictKind int

const (
	verdictDefer verdictKind = iota
	verdictAccept
	verdictReject
)

// Verdict is the closed result set for validators.
type Verdict struct {
	kind    verdictKind
	value   any
	message string
}

// Accept commits v as the option's value and stops the validator
// chain. Accept(nil) keeps the current value.
func Accept(v any) Verdict { return Verdict{kind: verdictAccept, value: v} }

// Reject records a VALIDATION error with msg and stops the chain.
func Reject(msg string) Verdict { return Verdict{kind: verdictReject, message: msg} }

// Defer passes judgment to the next validator in the chain. A chain
// exhausted with every validator deferring passes implicitly.
func Defer() Verdict { return Verdict{} }

// HandlerResult is the closed result set for handlers.
type HandlerResult struct {
	value any
	done  bool
}

// Next replaces the option's value with v and continues the chain.
func Next(v any) HandlerResult { return HandlerResult{value: v} }

// Done replaces the option's value with v and stops the chain.
func Done(v any) HandlerResult { return HandlerResult{value: v, done: true} }
