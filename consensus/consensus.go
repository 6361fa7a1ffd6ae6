// Package consensus tallies observed values per key and elects the most
// frequent one, with deterministic first-seen tie breaking.
package consensus

import "iter"

type Counter struct {
	keys []string
	data map[string]*tally
}

type tally struct {
	order  []string
	counts map[string]int
}

func New() *Counter {
	return &Counter{data: map[string]*tally{}}
}

func (c *Counter) Add(key, value string) {
	t, ok := c.data[key]
	if !ok {
		t = &tally{counts: map[string]int{}}
		c.data[key] = t
		c.keys = append(c.keys, key)
	}
	if _, ok := t.counts[value]; !ok {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

// Best returns the most frequent value observed for key. Ties go to the
// value that was observed first. Unobserved keys return "".
func (c *Counter) Best(key string) string {
	t, ok := c.data[key]
	if !ok {
		return ""
	}
	var best string
	var bestCount int
	for _, v := range t.order {
		if n := t.counts[v]; n > bestCount {
			best, bestCount = v, n
		}
	}
	return best
}

// All yields (key, Best(key)) pairs in the order keys were first observed.
func (c *Counter) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range c.keys {
			if !yield(k, c.Best(k)) {
				break
			}
		}
	}
}
