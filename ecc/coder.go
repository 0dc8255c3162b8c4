// Package ecc is the public surface of the Reed-Solomon erasure-coding
// core: given D data shards and P parity shards, Coder produces parity
// such that the original payload is recoverable from any D of the D+P
// shards. The coding engine itself lives in internal/galois, internal/matrix,
// and internal/rscore; Coder wires those together.
package ecc

import (
	"bytes"

	"github.com/pkg/errors"

	"lukechampine.com/us/internal/matrix"
	"lukechampine.com/us/internal/rscore"
)

// Coder holds a systematic distribution matrix for a fixed (dataShards,
// parityShards) pair. It is safe for concurrent use by multiple goroutines
// operating on different shard arrays, or on non-overlapping windows of the
// same shard array; it does no locking of its own.
type Coder struct {
	dataShards   int
	parityShards int
	totalShards  int

	m          *matrix.Matrix
	parityRows [][]uint8
}

// New constructs a Coder for dataShards data shards and parityShards
// parity shards. It returns ErrInvalidShape if dataShards < 1,
// parityShards < 0, or dataShards+parityShards > 255.
func New(dataShards, parityShards int, opts ...Option) (*Coder, error) {
	if dataShards < 1 || parityShards < 0 || dataShards+parityShards > 255 {
		return nil, ErrInvalidShape
	}

	o := options{matrixKind: Vandermonde}
	for _, opt := range opts {
		opt(&o)
	}

	total := dataShards + parityShards
	var m *matrix.Matrix
	var err error
	switch o.matrixKind {
	case Cauchy:
		m, err = buildCauchyMatrix(dataShards, total)
	default:
		m, err = rscore.BuildCodingMatrix(dataShards, total)
	}
	if err != nil {
		return nil, errors.Wrap(err, "ecc: building coding matrix")
	}

	parityRows := make([][]uint8, parityShards)
	for p := 0; p < parityShards; p++ {
		row, err := m.Row(dataShards + p)
		if err != nil {
			return nil, err
		}
		parityRows[p] = row
	}

	return &Coder{
		dataShards:   dataShards,
		parityShards: parityShards,
		totalShards:  total,
		m:            m,
		parityRows:   parityRows,
	}, nil
}

// DataShards returns the number of data shards this Coder was constructed with.
func (c *Coder) DataShards() int { return c.dataShards }

// ParityShards returns the number of parity shards this Coder was constructed with.
func (c *Coder) ParityShards() int { return c.parityShards }

// TotalShards returns DataShards() + ParityShards().
func (c *Coder) TotalShards() int { return c.totalShards }

func (c *Coder) checkShardCount(shards [][]byte) error {
	if len(shards) != c.totalShards {
		return errors.Wrapf(ErrTooFewShards, "got %d shards, want %d", len(shards), c.totalShards)
	}
	return nil
}

func checkWindow(shards [][]byte, offset, length int) error {
	if offset < 0 || length < 0 {
		return errors.Wrapf(ErrShardSize, "negative offset=%d or length=%d", offset, length)
	}
	for i, s := range shards {
		if len(s) < offset+length {
			return errors.Wrapf(ErrShardSize, "shard %d has length %d, need at least %d", i, len(s), offset+length)
		}
	}
	return nil
}

// EncodeParity computes the parity shards shards[DataShards():] from the
// data shards shards[:DataShards()], over the byte window
// [offset, offset+length) of every shard. Data shards are left unmodified;
// parity shards are fully overwritten over that window. len(shards) must
// equal TotalShards().
func (c *Coder) EncodeParity(shards [][]byte, offset, length int) error {
	if err := c.checkShardCount(shards); err != nil {
		return err
	}
	if err := checkWindow(shards, offset, length); err != nil {
		return err
	}
	inputs := shards[:c.dataShards]
	outputs := shards[c.dataShards:]
	rscore.CodeSomeShards(c.parityRows, inputs, outputs, offset, length)
	return nil
}

// IsParityCorrect recomputes parity from the data shards into a scratch
// buffer and compares it against shards[DataShards():] over
// [offset, offset+length). It returns false on the first mismatch found; it
// never returns a non-nil error for data corruption, only for malformed
// input: verification failure is a boolean result, not an
// error condition.
func (c *Coder) IsParityCorrect(shards [][]byte, offset, length int) (bool, error) {
	if err := c.checkShardCount(shards); err != nil {
		return false, err
	}
	if err := checkWindow(shards, offset, length); err != nil {
		return false, err
	}
	if c.parityShards == 0 {
		return true, nil
	}

	inputs := shards[:c.dataShards]
	scratch := make([][]byte, c.parityShards)
	for i := range scratch {
		scratch[i] = make([]byte, offset+length)
	}
	rscore.CodeSomeShards(c.parityRows, inputs, scratch, offset, length)

	for p := 0; p < c.parityShards; p++ {
		want := shards[c.dataShards+p][offset : offset+length]
		got := scratch[p][offset : offset+length]
		if !bytes.Equal(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// DecodeMissing reconstructs every shard for which present[i] is false,
// given that at least DataShards() shards are present. present and shards
// must each have TotalShards() elements; every shard buffer (present or
// not) must be at least offset+length bytes, since missing shards are
// written in place.
//
// If all shards are present, DecodeMissing is a no-op and returns nil. If
// fewer than DataShards() shards are present, it returns
// ErrUnrecoverableLoss. Data shards are restored first, then parity shards
// are recomputed from the now-complete data shards. The second pass reads
// shards[:DataShards()] directly rather than
// consulting present, so it observes the shards the first pass just wrote.
func (c *Coder) DecodeMissing(shards [][]byte, present []bool, offset, length int) error {
	if err := c.checkShardCount(shards); err != nil {
		return err
	}
	if len(present) != c.totalShards {
		return errors.Wrapf(ErrTooFewShards, "present has %d entries, want %d", len(present), c.totalShards)
	}

	numPresent := 0
	for _, p := range present {
		if p {
			numPresent++
		}
	}
	if numPresent == c.totalShards {
		return nil
	}
	if numPresent < c.dataShards {
		return ErrUnrecoverableLoss
	}
	if err := checkWindow(shards, offset, length); err != nil {
		return err
	}

	subMatrix := matrix.New(c.dataShards, c.dataShards)
	subShards := make([][]byte, c.dataShards)
	subRow := 0
	for row := 0; row < c.totalShards && subRow < c.dataShards; row++ {
		if !present[row] {
			continue
		}
		for col := 0; col < c.dataShards; col++ {
			v, err := c.m.Get(row, col)
			if err != nil {
				return err
			}
			if err := subMatrix.Set(subRow, col, v); err != nil {
				return err
			}
		}
		subShards[subRow] = shards[row]
		subRow++
	}

	decodeMatrix, err := subMatrix.Invert()
	if err != nil {
		// The RS invariant (any D rows of M are linearly independent)
		// guarantees subMatrix is invertible whenever numPresent >= D;
		// reaching here means the invariant was violated upstream.
		return errors.Wrap(err, "ecc: decode matrix inversion failed (library bug)")
	}

	var outputs [][]byte
	var rows [][]uint8
	for d := 0; d < c.dataShards; d++ {
		if present[d] {
			continue
		}
		row, err := decodeMatrix.Row(d)
		if err != nil {
			return err
		}
		outputs = append(outputs, shards[d])
		rows = append(rows, row)
	}
	if len(outputs) > 0 {
		rscore.CodeSomeShards(rows, subShards, outputs, offset, length)
	}

	outputs = outputs[:0]
	rows = rows[:0]
	for p := 0; p < c.parityShards; p++ {
		shardIdx := c.dataShards + p
		if present[shardIdx] {
			continue
		}
		outputs = append(outputs, shards[shardIdx])
		rows = append(rows, c.parityRows[p])
	}
	if len(outputs) > 0 {
		rscore.CodeSomeShards(rows, shards[:c.dataShards], outputs, offset, length)
	}
	return nil
}
