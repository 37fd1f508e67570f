package placement

import "errors"

var ErrInvalidCombination = errors.New("combination size must be between 1 and the number of squares")

/*
	Combinator walks every k-subset of a square universe exactly once, in
	lexicographic order of indices (i < j < k for triples). It is lazy and
	can be restarted with Reset.
*/
type Combinator struct {
	universe []Square
	k        int
	idx      []int
	started  bool
	done     bool
}

func Combinations(universe []Square, k int) (*Combinator, error) {
	if k < 1 || k > len(universe) {
		return nil, ErrInvalidCombination
	}

	return &Combinator{
		universe: universe,
		k:        k,
		idx:      make([]int, k),
	}, nil
}

// Next returns the next subset. The slice is fresh on every call.
func (c *Combinator) Next() ([]Square, bool) {
	if c.done {
		return nil, false
	}

	if !c.started {
		for i := range c.idx {
			c.idx[i] = i
		}
		c.started = true
		return c.current(), true
	}

	n := len(c.universe)
	i := c.k - 1
	for i >= 0 && c.idx[i] == n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return nil, false
	}

	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return c.current(), true
}

func (c *Combinator) Reset() {
	c.started = false
	c.done = false
}

// Count is C(n, k) for the universe.
func (c *Combinator) Count() int {
	return Binomial(len(c.universe), c.k)
}

func (c *Combinator) current() []Square {
	out := make([]Square, c.k)
	for i, v := range c.idx {
		out[i] = c.universe[v]
	}
	return out
}

func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	res := 1
	for i := 1; i <= k; i++ {
		res = res * (n - k + i) / i
	}
	return res
}
