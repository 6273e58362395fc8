package tutor

import "sync/atomic"

// Generation is a monotonic request counter. A caller takes an id with
// Begin before starting slow work and checks Current when the result
// arrives; any later Begin or Cancel makes the earlier id stale. The zero
// value is ready to use.
type Generation struct {
	n atomic.Uint64
}

// Begin starts a new generation and returns its id.
func (g *Generation) Begin() uint64 {
	return g.n.Add(1)
}

// Current reports whether id is still the latest generation.
func (g *Generation) Current(id uint64) bool {
	return g.n.Load() == id
}

// Cancel invalidates every outstanding id.
func (g *Generation) Cancel() {
	g.n.Add(1)
}
