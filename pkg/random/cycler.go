package random

// Cycler hands out the elements of a pool one at a time, in a shuffled order,
// never repeating an element until every element has been handed out. When
// the working list runs dry it is refilled with a copy of the same shuffled
// order, so all cycles are identical.
//
// A Cycler is not safe for concurrent use.
type Cycler[T any] struct {
	refill  []T
	current []T
}

// NewCycler shuffles pool once with src and returns a Cycler over it.
// The pool is copied; later changes to it are not observed.
func NewCycler[T any](pool []T, src Float64er) *Cycler[T] {
	return &Cycler[T]{refill: Shuffle(pool, src)}
}

// Next pops the next element. It returns false only when the pool is empty.
func (c *Cycler[T]) Next() (T, bool) {
	var zero T
	if len(c.refill) == 0 {
		return zero, false
	}
	if len(c.current) == 0 {
		c.current = append(c.current[:0], c.refill...)
	}
	last := len(c.current) - 1
	v := c.current[last]
	c.current[last] = zero
	c.current = c.current[:last]
	return v, true
}

// Len returns the pool size.
func (c *Cycler[T]) Len() int { return len(c.refill) }
