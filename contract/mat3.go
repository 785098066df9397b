// SPDX-License-Identifier: MIT

package contract

import (
	"fmt"
	"math"

	"github.com/katalvlaran/blockcontract/matrix"
)

// Dim is the spatial dimension of a node vector and the block edge length.
const Dim = 3

// Vec3 is a node vector.
type Vec3 [Dim]float64

// Mat3 is a 3×3 matrix stored row-major: m[r][c].
type Mat3 [Dim][Dim]float64

// Identity3 returns the 3×3 identity.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mat3FromMatrix copies a 3×3 Matrix into a Mat3.
// Errors: matrix.ErrNilMatrix, or a *ShapeError for any other shape.
func Mat3FromMatrix(m matrix.Matrix) (Mat3, error) {
	var out Mat3
	if err := matrix.ValidateNotNil(m); err != nil {
		return out, fmt.Errorf("Mat3FromMatrix: %w", err)
	}
	if matrix.ValidateShape(m, Dim, Dim) != nil {
		return out, shapeErrorf(OperandMap, m.Rows(), m.Cols(), Dim, Dim)
	}
	var err error
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if out[r][c], err = m.At(r, c); err != nil {
				return Mat3{}, fmt.Errorf("Mat3FromMatrix: %w", err)
			}
		}
	}

	return out, nil
}

// T returns the transpose.
func (m Mat3) T() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// MulVec returns m·x.
func (m Mat3) MulVec(x Vec3) Vec3 {
	return Vec3{
		m[0][0]*x[0] + m[0][1]*x[1] + m[0][2]*x[2],
		m[1][0]*x[0] + m[1][1]*x[1] + m[1][2]*x[2],
		m[2][0]*x[0] + m[2][1]*x[1] + m[2][2]*x[2],
	}
}

// Add returns m + n.
func (m Mat3) Add(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			out[r][c] = m[r][c] + n[r][c]
		}
	}

	return out
}

// Dense copies m into a new 3×3 *matrix.Dense.
func (m Mat3) Dense() *matrix.Dense {
	d, _ := matrix.NewDenseFrom(Dim, Dim, m.rowMajor(), matrix.WithNoValidateNaNInf()) // shape is fixed
	return d
}

// isFinite reports whether every entry is finite.
func (m Mat3) isFinite() bool {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if math.IsNaN(m[r][c]) || math.IsInf(m[r][c], 0) {
				return false
			}
		}
	}

	return true
}

func (m Mat3) rowMajor() []float64 {
	return []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	}
}

// Outer returns the rank-1 matrix x·yᵗ: entry (r,c) = x[r]*y[c].
func Outer(x, y Vec3) Mat3 {
	return Mat3{
		{x[0] * y[0], x[0] * y[1], x[0] * y[2]},
		{x[1] * y[0], x[1] * y[1], x[1] * y[2]},
		{x[2] * y[0], x[2] * y[1], x[2] * y[2]},
	}
}

// blockOf is the (i,j) contribution outer(ui,uj) + outer(vi,vj) + outer(vj,vi).
func blockOf(ui, uj, vi, vj Vec3) Mat3 {
	return Outer(ui, uj).Add(Outer(vi, vj)).Add(Outer(vj, vi))
}
