// SPDX-License-Identifier: MIT
// Package contract: sentinel errors and the typed shape error.

package contract

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/blockcontract/matrix"
)

// ErrShapeMismatch is the single domain failure of the contraction: an operand
// whose dimensions disagree with 3 rows for the nodes, 3×3 for the map, or
// 3N×3N for the output.
var ErrShapeMismatch = errors.New("contract: shape mismatch")

// Operand names used in ShapeError.
const (
	OperandMap    = "map"
	OperandNodes  = "nodes"
	OperandOutput = "output"
)

// ShapeError reports which operand was mis-sized and how.
// It matches both ErrShapeMismatch and matrix.ErrDimensionMismatch via errors.Is.
type ShapeError struct {
	Operand            string // OperandMap, OperandNodes or OperandOutput
	Rows, Cols         int    // observed shape
	WantRows, WantCols int    // required shape
}

// Error implements error.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s is %dx%d, want %dx%d",
		ErrShapeMismatch, e.Operand, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

// Unwrap exposes both sentinels to errors.Is.
func (e *ShapeError) Unwrap() []error {
	return []error{ErrShapeMismatch, matrix.ErrDimensionMismatch}
}

func shapeErrorf(operand string, rows, cols, wantRows, wantCols int) error {
	return &ShapeError{
		Operand:  operand,
		Rows:     rows,
		Cols:     cols,
		WantRows: wantRows,
		WantCols: wantCols,
	}
}
