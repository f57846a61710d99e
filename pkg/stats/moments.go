/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: moments.go
Description: Online mean and variance. Uses Welford's single-pass update, and Chan's
pairwise combination when a value arrives with a repeat count so bulk ingestion needs no
re-scan of history.
*/

package stats

import "math"

// Moments accumulates count, mean and the sum of squared deviations
type Moments struct {
	n    int64
	mean float64
	m2   float64
}

// Add observes x count times
func (m *Moments) Add(x float64, count int64) {
	if count <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	if count == 1 {
		m.n++
		delta := x - m.mean
		m.mean += delta / float64(m.n)
		m.m2 += delta * (x - m.mean)
		return
	}
	m.Combine(Moments{n: count, mean: x})
}

// Combine merges the moments of another partition into m
func (m *Moments) Combine(o Moments) {
	if o.n == 0 {
		return
	}
	if m.n == 0 {
		*m = o
		return
	}
	n := m.n + o.n
	delta := o.mean - m.mean
	m.mean += delta * float64(o.n) / float64(n)
	m.m2 += o.m2 + delta*delta*float64(m.n)*float64(o.n)/float64(n)
	m.n = n
}

// Count returns the number of observations
func (m *Moments) Count() int64 { return m.n }

// Mean returns the running mean
func (m *Moments) Mean() float64 { return m.mean }

// Variance returns the population variance
func (m *Moments) Variance() float64 {
	if m.n == 0 {
		return 0
	}
	return m.m2 / float64(m.n)
}

// StdDev returns the population standard deviation
func (m *Moments) StdDev() float64 {
	return math.Sqrt(m.Variance())
}
