package ecc

import (
	"github.com/pkg/errors"

	"lukechampine.com/us/internal/galois"
	"lukechampine.com/us/internal/matrix"
)

// buildCauchyMatrix returns a systematic (totalShards x dataShards) matrix
// whose top dataShards x dataShards block is the identity and whose
// remaining rows are a Cauchy matrix: row r, column c (for r >= dataShards)
// is 1/(r XOR c). Since r ranges over [dataShards,totalShards) and c over
// [0,dataShards), r XOR c is never zero, so no division fails.
func buildCauchyMatrix(dataShards, totalShards int) (*matrix.Matrix, error) {
	m := matrix.New(totalShards, dataShards)
	for r := 0; r < dataShards; r++ {
		if err := m.Set(r, r, 1); err != nil {
			return nil, err
		}
	}
	for r := dataShards; r < totalShards; r++ {
		for c := 0; c < dataShards; c++ {
			inv, err := galois.Div(1, uint8(r^c))
			if err != nil {
				return nil, errors.Wrap(err, "ecc: building Cauchy matrix")
			}
			if err := m.Set(r, c, inv); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
