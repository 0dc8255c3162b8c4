// Package buffer implements the thin shard-buffer allocator the coding
// engine treats as an external collaborator: given an object size and an
// optional leading padding, it allocates one contiguous zero-filled block
// of shard storage and slices it into per-shard views.
package buffer

import "errors"

// ErrInvalidShardCount is returned when a shard count is invalid.
var ErrInvalidShardCount = errors.New("buffer: shard count must be positive")

const alignment = 16

// align16 rounds n up to the next multiple of 16.
func align16(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Allocate computes padding = align16(minPadding), shardSize = padding +
// align16(ceil(objectSize/dataShards)), and returns totalShards byte slices
// of length shardSize backed by one contiguous zero-filled allocation of
// shardSize*totalShards bytes, at stride shardSize. The leading `padding`
// bytes of every shard are reserved for application-level metadata (for
// example a recoverable length prefix); the coding engine codes them like
// any other bytes whenever the caller's coding window includes them.
func Allocate(objectSize, minPadding, dataShards, totalShards int) ([][]byte, error) {
	if dataShards <= 0 || totalShards < dataShards {
		return nil, ErrInvalidShardCount
	}
	shardSize := ShardSize(objectSize, minPadding, dataShards)

	block := make([]byte, shardSize*totalShards)
	result := make([][]byte, totalShards)
	for i := range result {
		result[i] = block[i*shardSize : (i+1)*shardSize : (i+1)*shardSize]
	}
	return result, nil
}

// ShardSize returns the per-shard size Allocate would compute for the given
// object size, minimum padding, and data-shard count, without allocating.
func ShardSize(objectSize, minPadding, dataShards int) int {
	padding := align16(minPadding)
	perShardData := 0
	if objectSize > 0 {
		perShardData = (objectSize + dataShards - 1) / dataShards
	}
	return padding + align16(perShardData)
}
