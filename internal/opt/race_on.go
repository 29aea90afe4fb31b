//go:build race

package opt

// Race_ reports whether the race detector is enabled. Stress tests use it
// to scale down, the detector slows every atomic by an order of magnitude.
const Race_ = true
