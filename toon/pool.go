package toon

import "sync"

// keySlicePool recycles the []string scratch buffers the encoder uses
// to sort object keys, avoiding an allocation per object emitted.
var keySlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, 8)
		return &s
	},
}

// acquireKeySlice returns a zero-length slice with capacity at least
// hint, drawn from the pool when possible. Pair with releaseKeySlice
// on every exit path, including error returns.
func acquireKeySlice(hint int) []string {
	p := keySlicePool.Get().(*[]string)
	s := (*p)[:0]
	if cap(s) < hint {
		s = make([]string, 0, hint)
	}
	return s
}

// releaseKeySlice returns a scratch slice to the pool. Callers must not
// use the slice after calling this.
func releaseKeySlice(s []string) {
	s = s[:0]
	keySlicePool.Put(&s)
}
