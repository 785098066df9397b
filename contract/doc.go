// Package contract implements the block contraction of a 3×3 linear map F
// over a set of N nodes.
//
// Given F and a 3×N node matrix A (column i is node i), the kernel forms the
// transformed node sets U = F·A and V = Fᵗ·A and, for every ordered pair of
// nodes (i, j), adds the 3×3 block
//
//	outer(u_i, u_j) + outer(v_i, v_j) + outer(v_j, v_i)
//
// into block (i, j) of a caller-owned 3N×3N output matrix O, i.e. into
// O[3i:3i+3, 3j:3j+3]. The kernel accumulates; it never overwrites. Callers
// that want a fresh result per call reset O first (matrix.Dense.Zero).
//
// Shape is validated on every call: O must be exactly 3N×3N and A must have
// three rows, otherwise a *ShapeError (matching ErrShapeMismatch) is returned
// before O is touched. WithUncheckedShape opts out of the check for hot loops
// whose shapes are fixed by construction; with a wrong shape the call panics
// or writes outside the intended blocks.
//
// Arithmetic is plain IEEE-754 float64: NaN and Inf propagate, no tolerance
// logic is involved. Every call adds a symmetric contribution, since block
// (j, i) is the transpose of block (i, j).
//
// Conventions:
//
//   - F is a Mat3 ([3][3]float64), row-major: F[r][c].
//   - A and O are *matrix.Dense (row-major flat storage). The block loop walks
//     block rows in the outer loop so O is written in memory order.
//
// A Contractor keeps the U/V scratch between calls; repeated calls with the
// same N allocate nothing. Contract is the one-shot form.
package contract
