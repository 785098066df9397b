// SPDX-License-Identifier: MIT

// Package contract: functional configuration of the kernel.
//
// Design goals:
//   - Safe by default: shape is always validated unless explicitly disabled.
//   - No dead switches: each flag changes behavior and is covered by tests.
package contract

// Defaults (single source of truth).
const (
	// DefaultCheckShape validates operand shapes on every call.
	DefaultCheckShape = true

	// DefaultFiniteInputs leaves NaN/Inf in F and A alone (IEEE propagation).
	DefaultFiniteInputs = false
)

// Option mutates kernel options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds the effective kernel configuration.
type Options struct {
	checkShape   bool
	finiteInputs bool
}

// WithUncheckedShape skips the shape precondition. Intended for fixed-shape
// hot loops where the caller has validated once. A mis-sized operand is then
// undefined behavior at the kernel level: an index panic or misplaced blocks,
// never ErrShapeMismatch.
func WithUncheckedShape() Option {
	return func(o *Options) { o.checkShape = false }
}

// WithCheckedShape restores the default shape validation.
func WithCheckedShape() Option {
	return func(o *Options) { o.checkShape = true }
}

// WithFiniteInputs rejects NaN/±Inf anywhere in F or A with matrix.ErrNaNInf,
// before the output is touched. Costs one O(N) scan per call.
func WithFiniteInputs() Option {
	return func(o *Options) { o.finiteInputs = true }
}

// gatherOptions applies setters over the defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		checkShape:   DefaultCheckShape,
		finiteInputs: DefaultFiniteInputs,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
