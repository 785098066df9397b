// Package benchdata holds the inputs of the contraction benchmark driver:
// a fixed ten-node fixture and seeded random generators.
package benchdata

import (
	"math/rand"

	"github.com/katalvlaran/blockcontract/contract"
	"github.com/katalvlaran/blockcontract/matrix"
)

// FixtureNodes is the number of nodes in the fixed fixture.
const FixtureNodes = 10

// fixture is the 3×10 node matrix, row-major (row r holds coordinate r of every node).
var fixture = [contract.Dim * FixtureNodes]float64{
	0.79823853, 0.53879483, 0.6145651, 0.56647738, 0.80380162, 0.81328391, 0.92302888, 0.81700116, 0.40729593, 0.36585753,
	0.42701343, 0.69061995, 0.90149585, 0.17902489, 0.29973298, 0.8654594, 0.39307017, 0.33597961, 0.89614737, 0.03698405,
	0.9097741, 0.90695223, 0.05189938, 0.49869605, 0.32052228, 0.44186043, 0.32517814, 0.16204256, 0.14232612, 0.707076,
}

// Fixture returns a fresh copy of the fixed 3×10 node matrix.
func Fixture() *matrix.Dense {
	a, _ := matrix.NewDenseFrom(contract.Dim, FixtureNodes, fixture[:]) // finite, fixed shape
	return a
}

// RandomMat3 returns a map with entries uniform in [0,1).
func RandomMat3(rng *rand.Rand) contract.Mat3 {
	var f contract.Mat3
	for r := 0; r < contract.Dim; r++ {
		for c := 0; c < contract.Dim; c++ {
			f[r][c] = rng.Float64()
		}
	}

	return f
}

// RandomNodes returns a 3×n node matrix with entries uniform in [0,1).
func RandomNodes(rng *rand.Rand, n int) (*matrix.Dense, error) {
	a, err := matrix.NewDense(contract.Dim, n)
	if err != nil {
		return nil, err
	}
	err = a.Apply(func(_, _ int, _ float64) float64 { return rng.Float64() })

	return a, err
}
