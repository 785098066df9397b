// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the Dense numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal) that applies setters over the defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//
// Notes:
//   - The policy guards ingestion (Set, Apply, NewDenseFrom). Kernels that
//     accumulate into a Dense (Add, Mul, the block contraction) write through
//     the flat buffer and follow plain IEEE-754 semantics.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon is the tolerance used by symmetry checks in tests and examples.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set/Apply.
	DefaultValidateNaNInf = true
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options holds the effective Dense configuration.
// Fields are unexported; public APIs consume ...Option.
type Options struct {
	validateNaNInf bool // reject NaN/±Inf in Set/Apply/NewDenseFrom
}

// WithValidateNaNInf enables rejection of NaN/±Inf on ingestion (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-only guard. Use for buffers that
// must faithfully carry non-finite values (e.g. IEEE propagation tests).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies user-provided setters on top of the defaults.
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
