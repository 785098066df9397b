// SPDX-License-Identifier: MIT
// Package contract_test contains test helpers
//
// Purpose:
//   • Deterministic fixtures for the kernel tests.
//   • An independent brute-force reference built on gonum/mat.

package contract_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/blockcontract/contract"
	"github.com/katalvlaran/blockcontract/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tol is the absolute/relative tolerance for comparisons against the reference.
// Values are O(1)..O(10) so reassociation differences stay far below it.
const tol = 1e-12

// mustNodes builds a 3×n node matrix from row-major data.
func mustNodes(t testing.TB, n int, data []float64) *matrix.Dense {
	t.Helper()
	a, err := matrix.NewDenseFrom(contract.Dim, n, data)
	require.NoError(t, err)

	return a
}

// mustOutput allocates a zeroed 3n×3n output.
func mustOutput(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	dim := contract.OutputDim(n)
	out, err := matrix.NewDense(dim, dim)
	require.NoError(t, err)

	return out
}

// randomInputs returns a seeded random map and 3×n node set, entries in [-1,1).
func randomInputs(t testing.TB, seed int64, n int) (contract.Mat3, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var f contract.Mat3
	for r := 0; r < contract.Dim; r++ {
		for c := 0; c < contract.Dim; c++ {
			f[r][c] = 2*rng.Float64() - 1
		}
	}
	data := make([]float64, contract.Dim*n)
	for k := range data {
		data[k] = 2*rng.Float64() - 1
	}

	return f, mustNodes(t, n, data)
}

// toGonum copies a Dense into a gonum matrix (n must be > 0 in both dims).
func toGonum(d *matrix.Dense) *mat.Dense {
	g := d.RawRowMajor()
	data := make([]float64, len(g.Data))
	copy(data, g.Data)

	return mat.NewDense(g.Rows, g.Cols, data)
}

// gonumMap converts a Mat3 to a gonum 3×3.
func gonumMap(f contract.Mat3) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		f[0][0], f[0][1], f[0][2],
		f[1][0], f[1][1], f[1][2],
		f[2][0], f[2][1], f[2][2],
	})
}

// referenceBlock computes outer(u_i,u_j) + outer(v_i,v_j) + outer(v_j,v_i) with gonum.
func referenceBlock(u, v *mat.Dense, i, j int) *mat.Dense {
	blk := mat.NewDense(3, 3, nil)
	tmp := mat.NewDense(3, 3, nil)
	blk.Outer(1, u.ColView(i), u.ColView(j))
	tmp.Outer(1, v.ColView(i), v.ColView(j))
	blk.Add(blk, tmp)
	tmp.Outer(1, v.ColView(j), v.ColView(i))
	blk.Add(blk, tmp)

	return blk
}

// referenceTransform returns U = F·A and V = Fᵗ·A with gonum.
func referenceTransform(f contract.Mat3, a *matrix.Dense) (u, v *mat.Dense) {
	F, A := gonumMap(f), toGonum(a)
	u, v = &mat.Dense{}, &mat.Dense{}
	u.Mul(F, A)
	v.Mul(F.T(), A)

	return u, v
}

// referenceContract is the brute-force single-call contribution (n > 0).
func referenceContract(f contract.Mat3, a *matrix.Dense) *mat.Dense {
	n := a.Cols()
	u, v := referenceTransform(f, a)
	out := mat.NewDense(3*n, 3*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sub := out.Slice(3*i, 3*i+3, 3*j, 3*j+3).(*mat.Dense)
			sub.Add(sub, referenceBlock(u, v, i, j))
		}
	}

	return out
}

// requireMatches asserts got ≈ want element-wise.
func requireMatches(t testing.TB, want mat.Matrix, got *matrix.Dense) {
	t.Helper()
	require.Truef(t, mat.EqualApprox(want, toGonum(got), tol),
		"want\n%v\ngot\n%v", mat.Formatted(want), got)
}

// mat3Matches asserts a Mat3 equals a gonum 3×3 within tol.
func mat3Matches(t testing.TB, want mat.Matrix, got contract.Mat3) {
	t.Helper()
	require.Truef(t, mat.EqualApprox(want, gonumMap(got), tol),
		"want\n%v\ngot %v", mat.Formatted(want), got)
}
