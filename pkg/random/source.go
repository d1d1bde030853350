package random

// multiplier is the Lehmer (MINSTD) multiplier.
const multiplier = 48271

// scale normalizes the low 31 bits of the state into [0, 1).
const scale = 1 << 31

// Float64er is anything that yields floats in [0, 1).
// [Shuffle] and [Cycler] accept it so tests can substitute fixed sequences.
type Float64er interface {
	Float64() float64
}

// Source is a seeded Lehmer-style generator. Each call to Float64 multiplies
// the state by 48271 with 32-bit wrapping semantics and returns the low 31
// bits divided by 2^31.
//
// A seed of 0 is valid; the state then stays at 0 and every draw is 0.
type Source struct {
	state int32
}

// New returns a Source seeded with seed.
func New(seed int32) *Source {
	return &Source{state: seed}
}

// Float64 advances the state and returns a value in [0, 1).
func (s *Source) Float64() float64 {
	s.state = int32(uint32(s.state) * multiplier)
	return float64(s.state&0x7fffffff) / scale
}

// Ensure Source implements Float64er.
var _ Float64er = (*Source)(nil)
