// SPDX-License-Identifier: MIT

package contract

import (
	"fmt"

	"github.com/katalvlaran/blockcontract/matrix"
)

const (
	opTransform = "Transform"
	opBlock     = "BlockContribution"
	opOutBlock  = "OutputBlock"
)

// Transform returns the transformed node sets U = F·A and V = Fᵗ·A as new
// 3×N matrices, computed with matrix.Mul (BLAS). For finite inputs these agree
// with the kernel's per-node products up to rounding; BLAS skips zero
// coefficients of F, so 0·Inf terms from non-finite nodes read as 0 here.
// Fᵗ is formed with matrix.Transpose from the same dense copy of F.
//
// Errors: matrix.ErrNilMatrix, *ShapeError when a is not 3×N.
func Transform(f Mat3, a *matrix.Dense) (u, v *matrix.Dense, err error) {
	if a == nil {
		return nil, nil, fmt.Errorf("%s: %w", opTransform, matrix.ErrNilMatrix)
	}
	if a.Rows() != Dim {
		return nil, nil, fmt.Errorf("%s: %w", opTransform, shapeErrorf(OperandNodes, a.Rows(), a.Cols(), Dim, a.Cols()))
	}

	fd := f.Dense()
	um, err := matrix.Mul(fd, a)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTransform, err)
	}
	ft, err := matrix.Transpose(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTransform, err)
	}
	vm, err := matrix.Mul(ft, a)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTransform, err)
	}

	return um.(*matrix.Dense), vm.(*matrix.Dense), nil
}

// BlockContribution returns the 3×3 block that one Contract call adds at
// block position (i, j): outer(u_i,u_j) + outer(v_i,v_j) + outer(v_j,v_i).
// Node vectors are transformed directly; no 3×N scratch is built.
//
// Errors: matrix.ErrNilMatrix, *ShapeError when a is not 3×N,
// matrix.ErrOutOfRange when i or j is not a node index.
func BlockContribution(f Mat3, a *matrix.Dense, i, j int) (Mat3, error) {
	if a == nil {
		return Mat3{}, fmt.Errorf("%s: %w", opBlock, matrix.ErrNilMatrix)
	}
	if a.Rows() != Dim {
		return Mat3{}, fmt.Errorf("%s: %w", opBlock, shapeErrorf(OperandNodes, a.Rows(), a.Cols(), Dim, a.Cols()))
	}
	n := a.Cols()
	if i < 0 || i >= n || j < 0 || j >= n {
		return Mat3{}, fmt.Errorf("%s(%d,%d): %w", opBlock, i, j, matrix.ErrOutOfRange)
	}

	ai, aj := nodeOf(a, i), nodeOf(a, j)
	ft := f.T()

	return blockOf(f.MulVec(ai), f.MulVec(aj), ft.MulVec(ai), ft.MulVec(aj)), nil
}

// OutputBlock copies block (i, j) of a 3N×3N output, rows 3i..3i+2 and
// columns 3j..3j+2, into a Mat3. It reads through a matrix.MatrixView and
// does not copy the rest of out.
//
// Errors: matrix.ErrNilMatrix, *ShapeError when out is not 3N×3N,
// matrix.ErrOutOfRange when i or j is not a block index.
func OutputBlock(out *matrix.Dense, i, j int) (Mat3, error) {
	var blk Mat3
	if out == nil {
		return blk, fmt.Errorf("%s: %w", opOutBlock, matrix.ErrNilMatrix)
	}
	n := out.Rows() / Dim
	if out.Rows()%Dim != 0 || out.Cols() != out.Rows() {
		return blk, fmt.Errorf("%s: %w", opOutBlock, shapeErrorf(OperandOutput, out.Rows(), out.Cols(), Dim*n, Dim*n))
	}
	if i < 0 || i >= n || j < 0 || j >= n {
		return blk, fmt.Errorf("%s(%d,%d): %w", opOutBlock, i, j, matrix.ErrOutOfRange)
	}

	view, err := out.View(Dim*i, Dim*j, Dim, Dim)
	if err != nil {
		return blk, fmt.Errorf("%s: %w", opOutBlock, err)
	}
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if blk[r][c], err = view.At(r, c); err != nil {
				return Mat3{}, fmt.Errorf("%s: %w", opOutBlock, err)
			}
		}
	}

	return blk, nil
}

// nodeOf reads column k of a 3×N Dense.
func nodeOf(a *matrix.Dense, k int) Vec3 {
	return column(a.RawRowMajor().Data, a.Cols(), k)
}
