// SPDX-License-Identifier: MIT
// Package contract_test contains unit tests for the block contraction kernel.
package contract_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/blockcontract/contract"
	"github.com/katalvlaran/blockcontract/internal/benchdata"
	"github.com/katalvlaran/blockcontract/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestContract_ReferenceScenario: F = I, A = [1,0,0]ᵗ gives O = diag(3,0,0).
func TestContract_ReferenceScenario(t *testing.T) {
	a := mustNodes(t, 1, []float64{1, 0, 0})
	out := mustOutput(t, 1)

	require.NoError(t, contract.Contract(out, contract.Identity3(), a))
	require.Equal(t, "[3, 0, 0]\n[0, 0, 0]\n[0, 0, 0]\n", out.String())
}

// TestContract_MatchesBruteForce compares the kernel with a gonum reference.
func TestContract_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		seed int64
		n    int
	}{
		{"single node", 1, 1},
		{"two nodes", 2, 2},
		{"five nodes", 3, 5},
		{"seventeen nodes", 4, 17},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, a := randomInputs(t, tc.seed, tc.n)
			out := mustOutput(t, tc.n)

			require.NoError(t, contract.Contract(out, f, a))
			requireMatches(t, referenceContract(f, a), out)
		})
	}
}

// TestContract_Fixture runs the ten-node benchmark fixture against the reference.
func TestContract_Fixture(t *testing.T) {
	f := contract.Mat3{{0.3, -1.2, 0.5}, {2.0, 0.1, -0.7}, {0.0, 0.9, 1.1}}
	a := benchdata.Fixture()
	out := mustOutput(t, a.Cols())

	require.NoError(t, contract.Contract(out, f, a))
	requireMatches(t, referenceContract(f, a), out)
}

// TestContract_ShapeMismatch: any mis-sized operand fails and leaves O untouched.
func TestContract_ShapeMismatch(t *testing.T) {
	t.Parallel()

	_, a := randomInputs(t, 11, 2) // needs a 6×6 output
	twoRows, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	cases := []struct {
		name    string
		rows    int
		cols    int
		nodes   *matrix.Dense
		operand string
	}{
		{"too few rows", 5, 6, a, contract.OperandOutput},
		{"too few cols", 6, 5, a, contract.OperandOutput},
		{"both too large", 7, 7, a, contract.OperandOutput},
		{"non-square", 6, 12, a, contract.OperandOutput},
		{"empty output", 0, 0, a, contract.OperandOutput},
		{"nodes not 3 rows", 6, 6, twoRows, contract.OperandNodes},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := matrix.NewDense(tc.rows, tc.cols)
			require.NoError(t, err)
			require.NoError(t, out.Apply(func(i, j int, _ float64) float64 { return float64(i*tc.cols + j) }))
			before := out.Clone()

			err = contract.Contract(out, contract.Identity3(), tc.nodes)
			require.ErrorIs(t, err, contract.ErrShapeMismatch)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

			var se *contract.ShapeError
			require.True(t, errors.As(err, &se))
			require.Equal(t, tc.operand, se.Operand)

			require.Equal(t, before, matrix.Matrix(out), "output must not be mutated on error")
		})
	}
}

// TestContract_ShapeErrorDetails checks the reported dimensions.
func TestContract_ShapeErrorDetails(t *testing.T) {
	_, a := randomInputs(t, 5, 4)
	out, err := matrix.NewDense(12, 9)
	require.NoError(t, err)

	err = contract.Contract(out, contract.Identity3(), a)
	var se *contract.ShapeError
	require.ErrorAs(t, err, &se)
	require.Equal(t, contract.ShapeError{
		Operand:  contract.OperandOutput,
		Rows:     12,
		Cols:     9,
		WantRows: 12,
		WantCols: 12,
	}, *se)
	require.Contains(t, err.Error(), "output is 12x9, want 12x12")
}

// TestContract_NilOperands returns ErrNilMatrix for nil output or nodes.
func TestContract_NilOperands(t *testing.T) {
	_, a := randomInputs(t, 1, 1)
	out := mustOutput(t, 1)

	require.ErrorIs(t, contract.Contract(nil, contract.Identity3(), a), matrix.ErrNilMatrix)
	require.ErrorIs(t, contract.Contract(out, contract.Identity3(), nil), matrix.ErrNilMatrix)
}

// TestContract_ZeroNodes: N = 0 with a 0×0 output succeeds; a non-empty output fails.
func TestContract_ZeroNodes(t *testing.T) {
	a, err := matrix.NewDense(3, 0)
	require.NoError(t, err)
	out := mustOutput(t, 0)

	require.NoError(t, contract.Contract(out, contract.Identity3(), a))
	require.Equal(t, 0, out.Rows())
	require.Equal(t, 0, out.Cols())

	big := mustOutput(t, 1)
	require.ErrorIs(t, contract.Contract(big, contract.Identity3(), a), contract.ErrShapeMismatch)
}

// TestContract_Symmetry: block(j,i) is block(i,j)ᵗ, so one call adds a symmetric matrix.
func TestContract_Symmetry(t *testing.T) {
	f, a := randomInputs(t, 21, 6)
	out := mustOutput(t, 6)

	require.NoError(t, contract.Contract(out, f, a))
	require.NoError(t, matrix.ValidateSymmetric(out, tol))

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			bij, err := contract.BlockContribution(f, a, i, j)
			require.NoError(t, err)
			bji, err := contract.BlockContribution(f, a, j, i)
			require.NoError(t, err)
			require.Equal(t, bij.T(), bji)
		}
	}
}

// TestContract_Additivity: two calls on a zeroed output give twice one call.
func TestContract_Additivity(t *testing.T) {
	f, a := randomInputs(t, 31, 7)
	once := mustOutput(t, 7)
	twice := mustOutput(t, 7)

	require.NoError(t, contract.Contract(once, f, a))
	require.NoError(t, contract.Contract(twice, f, a))
	require.NoError(t, contract.Contract(twice, f, a))

	doubled, err := matrix.Scale(once, 2)
	require.NoError(t, err)
	ok, err := matrix.AllClose(twice, doubled, tol, tol)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestContract_AccumulatesOntoPriorContents: existing values are added onto, not replaced.
func TestContract_AccumulatesOntoPriorContents(t *testing.T) {
	f, a := randomInputs(t, 41, 3)
	fresh := mustOutput(t, 3)
	require.NoError(t, contract.Contract(fresh, f, a))

	prior := mustOutput(t, 3)
	require.NoError(t, prior.Apply(func(i, j int, _ float64) float64 { return float64(i - j) }))
	out := prior.Clone().(*matrix.Dense)
	require.NoError(t, contract.Contract(out, f, a))

	want, err := matrix.Add(prior, fresh)
	require.NoError(t, err)
	ok, err := matrix.AllClose(out, want, tol, tol)
	require.NoError(t, err)
	require.True(t, ok)

	// Zero() restores a fresh per-call result.
	out.Zero()
	require.NoError(t, contract.Contract(out, f, a))
	require.Equal(t, matrix.Matrix(fresh), out.Clone())
}

// TestContract_DiagonalBlocks: block(i,i) = outer(u_i,u_i) + 2·outer(v_i,v_i).
func TestContract_DiagonalBlocks(t *testing.T) {
	f, a := randomInputs(t, 51, 4)
	out := mustOutput(t, 4)
	require.NoError(t, contract.Contract(out, f, a))

	u, v := referenceTransform(f, a)
	for i := 0; i < 4; i++ {
		var uu, vv, want mat.Dense
		uu.Outer(1, u.ColView(i), u.ColView(i))
		vv.Outer(2, v.ColView(i), v.ColView(i))
		want.Add(&uu, &vv)

		got, err := contract.OutputBlock(out, i, i)
		require.NoError(t, err)
		mat3Matches(t, &want, got)
	}
}

// TestContract_NaNPropagates: non-finite inputs flow through IEEE arithmetic by default.
func TestContract_NaNPropagates(t *testing.T) {
	f := contract.Identity3()
	f[0][0] = math.NaN()
	a := mustNodes(t, 1, []float64{1, 0, 0})
	out := mustOutput(t, 1)

	require.NoError(t, contract.Contract(out, f, a))
	x, err := out.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(x))

	f = contract.Identity3()
	f[1][1] = math.Inf(1)
	out.Zero()
	require.NoError(t, contract.Contract(out, f, mustNodes(t, 1, []float64{0, 1, 0})))
	x, err = out.At(1, 1)
	require.NoError(t, err)
	require.True(t, math.IsInf(x, 1))
}

// TestContract_WithFiniteInputs rejects NaN/Inf before touching the output.
func TestContract_WithFiniteInputs(t *testing.T) {
	a := mustNodes(t, 1, []float64{1, 0, 0})
	out := mustOutput(t, 1)

	f := contract.Identity3()
	f[2][0] = math.Inf(-1)
	require.ErrorIs(t, contract.Contract(out, f, a, contract.WithFiniteInputs()), matrix.ErrNaNInf)

	bad, err := matrix.NewDenseFrom(3, 1, []float64{math.NaN(), 0, 0}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, contract.Contract(out, contract.Identity3(), bad, contract.WithFiniteInputs()), matrix.ErrNaNInf)

	m, err := matrix.MaxAbs(out)
	require.NoError(t, err)
	require.Zero(t, m)

	require.NoError(t, contract.Contract(out, contract.Identity3(), a, contract.WithFiniteInputs()))
}

// TestContract_UncheckedShape: same result on valid shapes, panic on an undersized output.
func TestContract_UncheckedShape(t *testing.T) {
	f, a := randomInputs(t, 61, 5)
	checked := mustOutput(t, 5)
	unchecked := mustOutput(t, 5)

	require.NoError(t, contract.Contract(checked, f, a))
	require.NoError(t, contract.Contract(unchecked, f, a, contract.WithUncheckedShape()))
	require.Equal(t, matrix.Matrix(checked), unchecked.Clone())

	small := mustOutput(t, 4)
	require.Panics(t, func() {
		_ = contract.Contract(small, f, a, contract.WithUncheckedShape())
	})

	// The last option wins.
	err := contract.Contract(small, f, a, contract.WithUncheckedShape(), contract.WithCheckedShape())
	require.ErrorIs(t, err, contract.ErrShapeMismatch)
}

// TestContractor_ReuseAcrossSizes: scratch is resized correctly between calls.
func TestContractor_ReuseAcrossSizes(t *testing.T) {
	k := contract.NewContractor()
	for i, n := range []int{4, 2, 9, 0, 3} {
		f, a := randomInputs(t, int64(100+i), n)
		out := mustOutput(t, n)
		require.NoError(t, k.Contract(out, f, a))
		if n > 0 {
			requireMatches(t, referenceContract(f, a), out)
		}
	}
}

// TestContractor_NoAllocs: repeated calls on a fixed size do not allocate.
func TestContractor_NoAllocs(t *testing.T) {
	f, a := randomInputs(t, 71, 10)
	out := mustOutput(t, 10)
	k := contract.NewContractor()
	require.NoError(t, k.Contract(out, f, a)) // size the scratch

	allocs := testing.AllocsPerRun(20, func() {
		_ = k.Contract(out, f, a)
	})
	require.Zero(t, allocs)
}
