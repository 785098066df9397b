// SPDX-License-Identifier: MIT
// Package matrix - reductions and element-wise comparisons.
//
// Purpose:
//   - MaxAbs: the scalar summary of an accumulation buffer (max |m[i,j]|).
//   - AllClose: tolerance comparison of two same-shaped matrices.
//
// Determinism:
//   - Fixed traversal order; no allocation on the *Dense paths.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	opMaxAbs   = "MaxAbs"
	opAllClose = "AllClose"
)

// MaxAbs returns max_{i,j} |m[i,j]|, or 0 for an empty matrix.
// MAIN DESCRIPTION:
//   - Summary statistic of an accumulation buffer.
//
// Implementation:
//   - *Dense: blas64.Iamax over the flat buffer (unit stride).
//   - Other Matrix implementations: i→j scan via At.
//
// Behavior highlights:
//   - ±Inf reports +Inf. NaN compares false against everything, so a NaN is
//     reported only when it is the very first element scanned.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func MaxAbs(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}
	if dm, ok := m.(*Dense); ok {
		if len(dm.data) == 0 {
			return 0, nil
		}
		idx := blas64.Iamax(blas64.Vector{N: len(dm.data), Inc: 1, Data: dm.data})
		return math.Abs(dm.data[idx]), nil
	}

	var (
		best, v float64
		err     error
	)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opMaxAbs, err)
			}
			if v = math.Abs(v); (i == 0 && j == 0) || v > best {
				best = v
			}
		}
	}

	return best, nil
}

// AllClose reports whether every pair a[i,j], b[i,j] is equal within atol
// absolutely or rtol relatively (scalar.EqualWithinAbsOrRel).
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol must be finite; negative values are taken by magnitude.
//   - NaN is never close to anything; equal infinities are close.
//
// Complexity: Time O(r*c). Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !scalar.EqualWithinAbsOrRel(da.data[idx], db.data[idx], atol, rtol) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	var av, bv float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j) // bounds guaranteed by shape validation
			bv, _ = b.At(i, j)
			if !scalar.EqualWithinAbsOrRel(av, bv, atol, rtol) {
				return false, nil
			}
		}
	}

	return true, nil
}
