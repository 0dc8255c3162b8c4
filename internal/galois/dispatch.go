package galois

import "golang.org/x/sys/cpu"

// useSSSE3 and useAVX2 gate the split-nybble multiply path: the scalar
// table lookup is always correct; these flags only pick whether the
// nybble-split byte-shuffle-equivalent path is used instead, never
// whether the *answer* changes.
var (
	useSSSE3 = cpu.X86.HasSSSE3
	useAVX2  = cpu.X86.HasAVX2
)
