// Package blockcontract computes the block contraction of a 3×3 linear map
// over a set of 3D nodes into a dense 3N×3N block matrix.
//
// What is in the box?
//
//	matrix/    — row-major Dense storage, no-copy views, validators and the
//	             small set of kernels (Mul via gonum BLAS, Transpose, Scale, Add,
//	             MaxAbs, AllClose) the contraction builds on
//	contract/  — the contraction kernel: Contract, the allocation-free
//	             Contractor, BlockContribution, OutputBlock and Transform for inspection
//	cmd/contractbench — timing driver: repeated contractions into one buffer,
//	             printing max |O|
//
// For every ordered node pair (i, j) one call adds
//
//	outer(u_i, u_j) + outer(v_i, v_j) + outer(v_j, v_i),   U = F·A, V = Fᵗ·A
//
// into the (i, j) 3×3 block of the output. Shapes are checked on every call;
// see package contract for the unchecked fast path.
//
//	go get github.com/katalvlaran/blockcontract
package blockcontract
