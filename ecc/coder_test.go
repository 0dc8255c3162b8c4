package ecc

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"
)

func makeShards(count, size int) [][]byte {
	shards := make([][]byte, count)
	for i := range shards {
		shards[i] = make([]byte, size)
	}
	return shards
}

func TestNewInvalidShape(t *testing.T) {
	cases := []struct{ d, p int }{
		{0, 1},
		{1, -1},
		{200, 56},
	}
	for _, tc := range cases {
		if _, err := New(tc.d, tc.p); err != ErrInvalidShape {
			t.Fatalf("New(%d,%d) = %v, want ErrInvalidShape", tc.d, tc.p, err)
		}
	}
}

// Scenario 1: smallest code.
func TestSmallestCode(t *testing.T) {
	c, err := New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	shards := makeShards(2, 16)
	for i := 0; i < 16; i++ {
		shards[0][i] = byte(i)
	}

	if err := c.EncodeParity(shards, 0, 16); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(shards[1], shards[0]) {
		t.Fatalf("parity row for (1,1) should be [1]: shards[1]=%x shards[0]=%x", shards[1], shards[0])
	}

	original := append([]byte(nil), shards[0]...)
	for i := range shards[0] {
		shards[0][i] = 0
	}
	present := []bool{false, true}
	if err := c.DecodeMissing(shards, present, 0, 16); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(shards[0], original) {
		t.Fatalf("decoded shard 0 = %x, want %x", shards[0], original)
	}
}

// Scenario 2: canonical Backblaze code, (D,P)=(4,2).
func TestBackblazeCode(t *testing.T) {
	const d, p, size = 4, 2, 64
	c, err := New(d, p)
	if err != nil {
		t.Fatal(err)
	}
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)

	shards := makeShards(d+p, size)
	for i := 0; i < d; i++ {
		rng.Read(shards[i])
	}
	if err := c.EncodeParity(shards, 0, size); err != nil {
		t.Fatal(err)
	}
	ok, err := c.IsParityCorrect(shards, 0, size)
	if err != nil || !ok {
		t.Fatalf("IsParityCorrect after encode = %v, %v, want true, nil", ok, err)
	}

	original3 := append([]byte(nil), shards[3]...)
	for i := range shards[3] {
		shards[3][i] = 0
	}
	present := []bool{true, true, true, false, true, true}
	if err := c.DecodeMissing(shards, present, 0, size); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(shards[3], original3) {
		t.Fatal("data shard 3 not restored correctly")
	}
	ok, err = c.IsParityCorrect(shards, 0, size)
	if err != nil || !ok {
		t.Fatalf("IsParityCorrect after data restore = %v, %v, want true, nil", ok, err)
	}

	original5 := append([]byte(nil), shards[5]...)
	for i := range shards[5] {
		shards[5][i] = 0
	}
	present = []bool{true, true, true, true, true, false}
	if err := c.DecodeMissing(shards, present, 0, size); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(shards[5], original5) {
		t.Fatal("parity shard 5 not restored correctly")
	}
}

// Scenario 3: maximum reachable loss, (D,P)=(10,4), shard length 1MiB.
func TestMaximumReachableLoss(t *testing.T) {
	const d, p, size = 10, 4, 1 << 20
	c, err := New(d, p)
	if err != nil {
		t.Fatal(err)
	}
	rng := frand.NewCustom(make([]byte, 32), 4096, 20)

	shards := makeShards(d+p, size)
	for i := 0; i < d; i++ {
		rng.Read(shards[i])
	}
	if err := c.EncodeParity(shards, 0, size); err != nil {
		t.Fatal(err)
	}
	original := make([][]byte, d+p)
	for i := range original {
		original[i] = append([]byte(nil), shards[i]...)
	}

	// lose any 4 shards: succeed.
	present := make([]bool, d+p)
	for i := range present {
		present[i] = true
	}
	for i := 0; i < 4; i++ {
		present[i] = false
		for j := range shards[i] {
			shards[i][j] = 0
		}
	}
	if err := c.DecodeMissing(shards, present, 0, size); err != nil {
		t.Fatalf("decode with 4 missing of 14: %v", err)
	}
	for i := 0; i < d+p; i++ {
		if !bytes.Equal(shards[i], original[i]) {
			t.Fatalf("shard %d not restored", i)
		}
	}

	// lose 5: unrecoverable.
	present[4] = false
	if err := c.DecodeMissing(shards, present, 0, size); err != ErrUnrecoverableLoss {
		t.Fatalf("decode with 5 missing of 14 = %v, want ErrUnrecoverableLoss", err)
	}
}

// Scenario 4: large-scale code, (D,P)=(16,4), shard length 16MiB.
func TestLargeScaleCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 16 MiB shard test in short mode")
	}
	const d, p, size = 16, 4, 16 << 20
	c, err := New(d, p)
	if err != nil {
		t.Fatal(err)
	}
	rng := frand.NewCustom(make([]byte, 32), 4096, 20)

	shards := makeShards(d+p, size)
	for i := 0; i < d; i++ {
		rng.Read(shards[i])
	}
	if err := c.EncodeParity(shards, 0, size); err != nil {
		t.Fatal(err)
	}
	ok, err := c.IsParityCorrect(shards, 0, size)
	if err != nil || !ok {
		t.Fatalf("IsParityCorrect = %v, %v, want true, nil", ok, err)
	}

	shards[2][size/2] ^= 0xFF
	ok, err = c.IsParityCorrect(shards, 0, size)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("IsParityCorrect should be false after single-byte corruption")
	}
}

// Scenario 6: non-multiple-of-16 window.
func TestNonAlignedWindow(t *testing.T) {
	const d, p = 4, 2
	c, err := New(d, p)
	if err != nil {
		t.Fatal(err)
	}
	const shardLen = 200
	const offset, length = 3, 77

	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	shards := makeShards(d+p, shardLen)
	for i := 0; i < d; i++ {
		rng.Read(shards[i])
	}
	before := make([][]byte, d+p)
	for i := range before {
		before[i] = append([]byte(nil), shards[i]...)
	}

	if err := c.EncodeParity(shards, offset, length); err != nil {
		t.Fatal(err)
	}

	// bytes outside the window are unchanged on every shard, including parity.
	for i := 0; i < d+p; i++ {
		if !bytes.Equal(shards[i][:offset], before[i][:offset]) {
			t.Fatalf("shard %d: bytes before offset changed", i)
		}
		if !bytes.Equal(shards[i][offset+length:], before[i][offset+length:]) {
			t.Fatalf("shard %d: bytes after window changed", i)
		}
	}

	ok, err := c.IsParityCorrect(shards, offset, length)
	if err != nil || !ok {
		t.Fatalf("IsParityCorrect = %v, %v, want true, nil", ok, err)
	}
}

func TestEncodeParityIdempotent(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	shards := makeShards(6, 128)
	for i := 0; i < 4; i++ {
		rng.Read(shards[i])
	}
	if err := c.EncodeParity(shards, 0, 128); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), shards[4]...)
	if err := c.EncodeParity(shards, 0, 128); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, shards[4]) {
		t.Fatal("EncodeParity is not idempotent")
	}
}

func TestDecodeMissingNoOpWhenComplete(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	shards := makeShards(6, 32)
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)
	for i := range shards {
		rng.Read(shards[i])
	}
	before := make([][]byte, 6)
	for i := range before {
		before[i] = append([]byte(nil), shards[i]...)
	}
	present := []bool{true, true, true, true, true, true}
	if err := c.DecodeMissing(shards, present, 0, 32); err != nil {
		t.Fatal(err)
	}
	for i := range shards {
		if !bytes.Equal(shards[i], before[i]) {
			t.Fatalf("shard %d changed on no-op decode", i)
		}
	}
}

func TestZeroLengthWindowIsNoOp(t *testing.T) {
	c, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	shards := makeShards(6, 32)
	for i := range shards[4] {
		shards[4][i] = 0xFF
	}
	before := append([]byte(nil), shards[4]...)
	if err := c.EncodeParity(shards, 5, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(shards[4], before) {
		t.Fatal("zero-length EncodeParity modified output shard")
	}
}
