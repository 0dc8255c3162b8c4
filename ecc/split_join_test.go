package ecc

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	data := make([]byte, 997)
	rng.Read(data)

	shards, err := c.Split(append([]byte(nil), data...))
	if err != nil {
		t.Fatal(err)
	}
	if len(shards) != 6 {
		t.Fatalf("Split returned %d shards, want 6", len(shards))
	}
	if err := c.EncodeParity(shards, 0, len(shards[0])); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.Join(&buf, shards, len(data)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatal("Join did not reproduce the original data")
	}
}

func TestSplitRejectsEmptyInput(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Split(nil); err != ErrShortData {
		t.Fatalf("Split(nil) = %v, want ErrShortData", err)
	}
}

func TestJoinRequiresAllDataShards(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	shards := makeShards(6, 32)
	shards[2] = nil
	var buf bytes.Buffer
	if err := c.Join(&buf, shards, 64); err != ErrReconstructRequired {
		t.Fatalf("Join with missing shard = %v, want ErrReconstructRequired", err)
	}
}

func TestJoinTooFewShards(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := c.Join(&buf, makeShards(2, 32), 16); err != ErrTooFewShards {
		t.Fatalf("Join with too few shards = %v, want ErrTooFewShards", err)
	}
}

func TestSplitMultiJoinMultiRoundTrip(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	const subsize = 8
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	blockSize := 4 * subsize
	data := make([]byte, blockSize*5) // exact multiple, 5 blocks
	rng.Read(data)

	shards := make([][]byte, 6)
	for i := range shards {
		shards[i] = make([]byte, 0, 5*subsize)
	}
	if err := c.SplitMulti(data, shards, subsize); err != nil {
		t.Fatal(err)
	}
	if err := c.EncodeParity(shards, 0, len(shards[0])); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.JoinMulti(&buf, shards, subsize, 0, len(data)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatal("JoinMulti did not reproduce the original data")
	}
}

func TestJoinMultiSkipsLeadingBytes(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	const subsize = 8
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	blockSize := 4 * subsize
	data := make([]byte, blockSize*3)
	rng.Read(data)

	shards := make([][]byte, 6)
	for i := range shards {
		shards[i] = make([]byte, 0, 3*subsize)
	}
	if err := c.SplitMulti(data, shards, subsize); err != nil {
		t.Fatal(err)
	}
	if err := c.EncodeParity(shards, 0, len(shards[0])); err != nil {
		t.Fatal(err)
	}

	const skip = 5
	var buf bytes.Buffer
	if err := c.JoinMulti(&buf, shards, subsize, skip, len(data)-skip); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data[skip:]) {
		t.Fatal("JoinMulti with skip did not reproduce the tail of the original data")
	}
}
