package random

// Shuffle returns a permutation of s driven by src. The input is not modified.
//
// It walks from the end of the slice: with i starting at len(s), it draws
// j = floor(src.Float64() * i), decrements i and swaps positions i and j, until
// i reaches zero. That consumes exactly len(s) draws.
func Shuffle[T any](s []T, src Float64er) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out); i > 0; {
		j := int(src.Float64() * float64(i))
		i--
		out[i], out[j] = out[j], out[i]
	}
	return out
}
