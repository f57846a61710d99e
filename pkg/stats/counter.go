/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: counter.go
Description: Size-capped value counter used for the cardinality and outlier maps. Once
the cap is reached new values are no longer recorded individually; they are counted as
overflow and the counter reports itself as capped.
*/

package stats

import "sort"

// CappedCounter counts occurrences of up to Cap distinct values
type CappedCounter struct {
	counts   map[string]int64
	cap      int
	overflow int64
	capped   bool
}

// NewCappedCounter creates a counter recording at most cap distinct values
func NewCappedCounter(cap int) *CappedCounter {
	return &CappedCounter{counts: make(map[string]int64), cap: cap}
}

// Add records count occurrences of value. It returns false when value could not be
// recorded because the cap was reached.
func (c *CappedCounter) Add(value string, count int64) bool {
	if count <= 0 {
		return true
	}
	if _, ok := c.counts[value]; ok {
		c.counts[value] += count
		return true
	}
	if len(c.counts) >= c.cap {
		c.capped = true
		c.overflow += count
		return false
	}
	c.counts[value] = count
	return true
}

// Count returns the recorded count for value
func (c *CappedCounter) Count(value string) int64 { return c.counts[value] }

// Len returns the number of distinct values recorded
func (c *CappedCounter) Len() int { return len(c.counts) }

// Capped reports whether any value was refused
func (c *CappedCounter) Capped() bool { return c.capped }

// Overflow returns the number of occurrences not recorded individually
func (c *CappedCounter) Overflow() int64 { return c.overflow }

// Total returns the sum of recorded counts
func (c *CappedCounter) Total() int64 {
	var total int64
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the recorded values in lexical order
func (c *CappedCounter) Keys() []string {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the recorded counts
func (c *CappedCounter) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
