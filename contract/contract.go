// SPDX-License-Identifier: MIT

// Package contract - the block contraction kernel.
//
// Purpose:
//   - Accumulate outer(u_i,u_j) + outer(v_i,v_j) + outer(v_j,v_i) into every
//     3×3 block (i,j) of a 3N×3N output, with U = F·A and V = Fᵗ·A.
//
// Determinism:
//   - Fixed loop order: block row i outer, block column j inner (row-major O).
//   - Each (i,j) maps to exactly one disjoint block; no block is written twice per call.
//
// Complexity:
//   - Time O(N) for U/V + O(N²) for the blocks. Space O(N) scratch.

package contract

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"

	"github.com/katalvlaran/blockcontract/matrix"
)

const opContract = "Contract"

// NodeCount returns N, the number of node columns in a.
func NodeCount(a matrix.Matrix) int { return a.Cols() }

// OutputDim returns the required output edge length for n nodes (3n).
func OutputDim(n int) int { return Dim * n }

// Contract accumulates the block contraction of f over the nodes a into out.
// MAIN DESCRIPTION:
//   - One-shot form of (*Contractor).Contract; allocates U/V scratch per call.
//
// Inputs:
//   - out: 3N×3N accumulation buffer, mutated in place (added onto).
//   - f  : the 3×3 map.
//   - a  : 3×N node matrix (read-only).
//   - opts: WithUncheckedShape, WithFiniteInputs.
//
// Errors:
//   - matrix.ErrNilMatrix for nil out/a.
//   - *ShapeError (ErrShapeMismatch) for mis-sized a or out.
//   - matrix.ErrNaNInf when WithFiniteInputs is set and f or a is non-finite.
//
// On error out is left untouched.
func Contract(out *matrix.Dense, f Mat3, a *matrix.Dense, opts ...Option) error {
	return NewContractor(opts...).Contract(out, f, a)
}

// Contractor runs the kernel with reusable U/V scratch.
// Calls with a stable node count do not allocate after the first one.
// A Contractor is not safe for concurrent use; use one per goroutine.
// Distinct Contractors writing distinct outputs need no coordination.
type Contractor struct {
	opts Options
	u, v []Vec3 // u[k] = F·a_k, v[k] = Fᵗ·a_k
}

// NewContractor returns a Contractor configured by opts.
func NewContractor(opts ...Option) *Contractor {
	return &Contractor{opts: gatherOptions(opts...)}
}

// Contract accumulates the contraction of f over a into out.
// See the package-level Contract for the contract and errors.
//
// Implementation:
//   - Stage 1: validate (nil → nodes shape → output shape → finiteness).
//   - Stage 2: u_k = F·a_k, v_k = Fᵗ·a_k for every node into scratch.
//   - Stage 3: for i, for j: O[3i:3i+3, 3j:3j+3] += block(i,j).
//
// Notes:
//   - U and V are formed with full 3-term dot products rather than BLAS:
//     gonum's Dgemm skips zero coefficients, which turns 0·Inf into 0 instead of NaN.
func (c *Contractor) Contract(out *matrix.Dense, f Mat3, a *matrix.Dense) error {
	if c.opts.checkShape {
		if err := validate(out, a); err != nil {
			return fmt.Errorf("%s: %w", opContract, err)
		}
	}
	if c.opts.finiteInputs {
		if err := validateFinite(f, a); err != nil {
			return fmt.Errorf("%s: %w", opContract, err)
		}
	}

	n := a.Cols()
	if n == 0 {
		return nil
	}
	c.transform(f, a.RawRowMajor())
	c.accumulate(out.RawRowMajor(), n)

	return nil
}

// validate checks the shape precondition without touching out.
// matrix.ValidateShape detects the mismatch; the typed error carries the detail.
func validate(out, a *matrix.Dense) error {
	if a == nil || out == nil {
		return matrix.ErrNilMatrix
	}
	if matrix.ValidateShape(a, Dim, a.Cols()) != nil {
		return shapeErrorf(OperandNodes, a.Rows(), a.Cols(), Dim, a.Cols())
	}
	dim := OutputDim(a.Cols())
	if matrix.ValidateShape(out, dim, dim) != nil {
		return shapeErrorf(OperandOutput, out.Rows(), out.Cols(), dim, dim)
	}

	return nil
}

func validateFinite(f Mat3, a *matrix.Dense) error {
	if !f.isFinite() {
		return fmt.Errorf("%s: %w", OperandMap, matrix.ErrNaNInf)
	}
	if a == nil {
		return matrix.ErrNilMatrix
	}
	for _, x := range a.RawRowMajor().Data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s: %w", OperandNodes, matrix.ErrNaNInf)
		}
	}

	return nil
}

// transform fills c.u and c.v from the 3×N row-major nodes.
func (c *Contractor) transform(f Mat3, ag blas64.General) {
	n := ag.Cols
	if cap(c.u) < n {
		c.u = make([]Vec3, n)
		c.v = make([]Vec3, n)
	}
	c.u, c.v = c.u[:n], c.v[:n]

	ft := f.T()
	var x Vec3
	for k := 0; k < n; k++ {
		x = Vec3{ag.Data[k], ag.Data[ag.Stride+k], ag.Data[2*ag.Stride+k]}
		c.u[k] = f.MulVec(x)
		c.v[k] = ft.MulVec(x)
	}
}

// accumulate adds every block into og. og must be 3n×3n.
func (c *Contractor) accumulate(og blas64.General, n int) {
	var (
		i, j, r, off int
		blk          Mat3
		row          []float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			blk = blockOf(c.u[i], c.u[j], c.v[i], c.v[j])

			off = Dim*i*og.Stride + Dim*j
			for r = 0; r < Dim; r++ {
				row = og.Data[off : off+Dim]
				row[0] += blk[r][0]
				row[1] += blk[r][1]
				row[2] += blk[r][2]
				off += og.Stride
			}
		}
	}
}

// column extracts node k from a 3×n row-major buffer.
func column(buf []float64, n, k int) Vec3 {
	return Vec3{buf[k], buf[n+k], buf[2*n+k]}
}
