// Package random provides the deterministic randomness used by tile layout.
//
// Everything here is reproducible from integer seeds so that a background
// generated on one machine is byte-identical to the one generated on another.
// The package has three pieces:
//
//   - [Source]: a Lehmer-style generator (multiplier 48271, 32-bit wrapping
//     arithmetic) returning floats in [0, 1).
//   - [Shuffle]: a non-mutating Fisher–Yates permutation driven by a Source.
//   - [Cycler]: hands out elements of a shuffled pool without repetition until
//     the pool is exhausted, then starts over in the same order.
//
// A Source is not safe for concurrent use. Give every independent stream its
// own Source; sharing one between streams couples their outputs.
//
// # Usage
//
//	src := random.New(42)
//	order := random.Shuffle([]string{"a", "b", "c"}, src)
//
//	icons := random.NewCycler(fragments, random.New(7))
//	if icon, ok := icons.Next(); ok {
//	    // use icon
//	}
package random
