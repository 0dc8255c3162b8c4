package ecc

import (
	"bytes"
	"io"
)

// Split splits data into DataShards() equal-length shards, zero-padding the
// final shard if necessary, and returns TotalShards() shard buffers (data
// shards followed by zero-filled parity shards, ready for EncodeParity).
// A natural companion to EncodeParity/DecodeMissing for callers that start
// from a flat byte slice rather than pre-split shards.
func (c *Coder) Split(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, ErrShortData
	}
	perShard := (len(data) + c.dataShards - 1) / c.dataShards

	if cap(data) > len(data) {
		n := len(data)
		data = data[:cap(data)]
		for i := n; i < len(data); i++ {
			data[i] = 0
		}
	}
	if len(data) < c.totalShards*perShard {
		data = append(data, make([]byte, c.totalShards*perShard-len(data))...)
	}

	shards := make([][]byte, c.totalShards)
	for i := range shards {
		shards[i] = data[:perShard]
		data = data[perShard:]
	}
	return shards, nil
}

// Join writes the first outSize bytes of the reassembled data shards to
// dst. Only shards[:DataShards()] are considered; a missing (zero-length)
// data shard yields ErrReconstructRequired, since Join performs no
// reconstruction itself.
func (c *Coder) Join(dst io.Writer, shards [][]byte, outSize int) error {
	if len(shards) < c.dataShards {
		return ErrTooFewShards
	}
	shards = shards[:c.dataShards]

	size := 0
	for _, shard := range shards {
		if len(shard) == 0 {
			return ErrReconstructRequired
		}
		size += len(shard)
	}
	if size < outSize {
		return ErrShortData
	}

	write := outSize
	for _, shard := range shards {
		if write < len(shard) {
			_, err := dst.Write(shard[:write])
			return err
		}
		n, err := dst.Write(shard)
		if err != nil {
			return err
		}
		write -= n
	}
	return nil
}

// SplitMulti splits data into blocks of shards, where each block contributes
// subsize bytes to each of DataShards() shards. shards must already have
// sufficient capacity; their length is extended to fit.
func (c *Coder) SplitMulti(data []byte, shards [][]byte, subsize int) error {
	blockSize := c.dataShards * subsize
	numBlocks := len(data) / blockSize
	if len(data)%blockSize != 0 {
		numBlocks++
	}

	shardSize := numBlocks * subsize
	for i := range shards {
		if cap(shards[i]) < shardSize {
			return ErrShortData
		}
		shards[i] = shards[i][:shardSize]
	}

	buf := bytes.NewBuffer(data)
	for off := 0; buf.Len() > 0; off += subsize {
		for i := 0; i < c.dataShards; i++ {
			copy(shards[i][off:], buf.Next(subsize))
		}
	}
	return nil
}

// JoinMulti joins multi-block shards produced by SplitMulti, writing
// writeLen bytes to dst after skipping the first skip bytes of the
// reassembled data.
func (c *Coder) JoinMulti(dst io.Writer, shards [][]byte, subsize, skip, writeLen int) error {
	if len(shards) < c.dataShards {
		return ErrTooFewShards
	}
	shards = shards[:c.dataShards]

	size := 0
	for _, shard := range shards {
		if len(shard) == 0 {
			return ErrReconstructRequired
		}
		size += len(shard)
		if size >= writeLen {
			break
		}
	}
	if size < writeLen {
		return ErrShortData
	}

	for off := 0; writeLen > 0; off += subsize {
		for _, shard := range shards {
			block := shard[off:][:subsize]
			if skip >= len(block) {
				skip -= len(block)
				continue
			} else if skip > 0 {
				block = block[skip:]
				skip = 0
			}
			if writeLen < len(block) {
				block = block[:writeLen]
			}
			n, err := dst.Write(block)
			if err != nil {
				return err
			}
			writeLen -= n
		}
	}
	return nil
}
