package rscore

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"
	"lukechampine.com/us/internal/galois"
)

func TestCodeSomeShardsMatchesSequentialReference(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 20)

	for _, length := range []int{0, 1, 15, 16, 17, 4096, 4096 + 1, 4096*3 + 77} {
		const inputCount, outputCount = 3, 2
		offset := rng.Intn(8)
		inputs := make([][]byte, inputCount)
		for i := range inputs {
			inputs[i] = make([]byte, offset+length+8)
			rng.Read(inputs[i])
		}
		matrixRows := make([][]uint8, outputCount)
		for o := range matrixRows {
			row := make([]uint8, inputCount)
			rng.Read(row)
			matrixRows[o] = row
		}

		outputs := make([][]byte, outputCount)
		wantOutputs := make([][]byte, outputCount)
		for o := range outputs {
			outputs[o] = make([]byte, offset+length+8)
			rng.Read(outputs[o])
			wantOutputs[o] = append([]byte(nil), outputs[o]...)
		}

		CodeSomeShards(matrixRows, inputs, outputs, offset, length)
		for o, row := range matrixRows {
			galois.Multiply(row[0], inputs[0], wantOutputs[o], offset, length)
			for i := 1; i < len(row); i++ {
				galois.MultiplyXor(row[i], inputs[i], wantOutputs[o], offset, length)
			}
		}

		for o := range outputs {
			if !bytes.Equal(outputs[o], wantOutputs[o]) {
				t.Fatalf("length=%d output %d mismatch", length, o)
			}
		}
	}
}
