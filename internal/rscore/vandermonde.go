// Package rscore implements the Reed-Solomon distribution-matrix builder
// and the chunked, parallel coding engine that multiplies matrix rows by
// shard data. It is the central piece of the coding engine: given
// internal/galois and internal/matrix, rscore is what package ecc wires
// into a public Coder.
package rscore

import (
	"github.com/pkg/errors"

	"lukechampine.com/us/internal/galois"
	"lukechampine.com/us/internal/matrix"
)

// BuildCodingMatrix returns the systematic (totalShards x dataShards)
// coding matrix M: a Vandermonde matrix V with V[r][c] = r^c (computed via
// galois.Exp, with galois.Exp(0,0)=1), multiplied by the inverse of its top
// dataShards x dataShards square block. The resulting top block is the
// identity, which is what makes the code systematic: data shards are
// copied through unmodified.
//
// V[r][c] is the row index raised to the column-index power, not 2
// raised to the r*c product; both are ways of describing a Vandermonde
// matrix over GF(2^8), but exp(r, c) is the one that actually produces
// an invertible top square for every valid (dataShards, totalShards),
// matching klauspost/reedsolomon's vandermonde construction.
func BuildCodingMatrix(dataShards, totalShards int) (*matrix.Matrix, error) {
	v := matrix.New(totalShards, dataShards)
	for r := 0; r < totalShards; r++ {
		for c := 0; c < dataShards; c++ {
			if err := v.Set(r, c, galois.Exp(uint8(r), c)); err != nil {
				return nil, err
			}
		}
	}
	top, err := v.SubMatrix(0, 0, dataShards, dataShards)
	if err != nil {
		return nil, err
	}
	topInv, err := top.Invert()
	if err != nil {
		return nil, errors.Wrap(err, "rscore: inverting top square of Vandermonde matrix")
	}
	return v.Times(topInv)
}
