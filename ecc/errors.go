package ecc

import "github.com/pkg/errors"

// Error values a Coder's methods may return. matrix.ErrOutOfRange,
// matrix.ErrSingular, and galois.ErrDivisionByZero can
// also surface, wrapped, from New and DecodeMissing; they are unreachable
// for well-formed Reed-Solomon inputs and indicate a library bug if seen.
var (
	// ErrInvalidShape is returned by New when dataShards < 1, parityShards
	// < 0, or their sum exceeds 255.
	ErrInvalidShape = errors.New("ecc: data shards must be >= 1, parity shards >= 0, and their sum must not exceed 255")

	// ErrTooFewShards is returned when the shards slice passed to a Coder
	// method does not have exactly DataShards()+ParityShards() elements,
	// or (for Split/Join family calls) fewer than DataShards() shards.
	ErrTooFewShards = errors.New("ecc: wrong number of shards supplied")

	// ErrShardSize is returned when a shard is too short for the
	// requested (offset, length) coding window.
	ErrShardSize = errors.New("ecc: shard too short for requested window")

	// ErrUnrecoverableLoss is returned by DecodeMissing when fewer than
	// DataShards() shards are present.
	ErrUnrecoverableLoss = errors.New("ecc: fewer than the minimum required shards are present")

	// ErrShortData is returned by Split/SplitMulti/Join/JoinMulti when
	// there isn't enough data to satisfy the request.
	ErrShortData = errors.New("ecc: not enough data")

	// ErrReconstructRequired is returned by Join/JoinMulti when a
	// required data shard is missing and must be reconstructed first.
	ErrReconstructRequired = errors.New("ecc: a required data shard is missing; call DecodeMissing first")
)
