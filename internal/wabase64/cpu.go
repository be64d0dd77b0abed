package wabase64

import "golang.org/x/sys/cpu"

// init mirrors the original's compile/runtime SIMD dispatch: the chunked
// word path only turns on where the platform has some form of packed
// vector unit, even though this implementation's chunking itself is plain
// Go arithmetic rather than real SIMD. Everywhere else, decode and encode
// run the scalar loop exclusively.
func init() {
	hasFastPath = cpu.X86.HasAVX2 || cpu.X86.HasSSSE3 || cpu.ARM64.HasASIMD || cpu.ARM.HasNEON
}
