// Package matrix provides the dense float64 storage and the small set of
// linear-algebra kernels the block contraction is built on.
//
// The matrix package provides:
//
//   - Dense, a row-major matrix over a flat buffer (offset = i*cols + j), with
//     bounds-checked At/Set and a finite-only numeric policy for ingestion.
//   - MatrixView, a read-only no-copy window into a Dense; contract.OutputBlock
//     reads one 3x3 output block this way.
//   - RawRowMajor, the blas64.General view the contraction kernel writes through.
//   - Mul, Transpose, Scale, Add kernels. Mul on two *Dense operands runs
//     through gonum's blas64.Gemm over a shared-storage General view.
//   - Reductions and checks: MaxAbs, AllClose, ValidateSymmetric and the other
//     validators in validators.go.
//
// Zero-sized matrices (0×k, k×0, 0×0) are legal: the contraction of zero
// nodes writes into a 0×0 output.
package matrix
