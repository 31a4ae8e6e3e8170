package spectrum

import (
	"math"
	"sort"
)

// ClosestIndex returns the index of the element of sorted nearest to value.
// sorted may be ascending or descending. It returns -1 for an empty slice.
func ClosestIndex(sorted []float64, value float64) int {
	n := len(sorted)
	if n == 0 {
		return -1
	}

	if n == 1 {
		return 0
	}

	descending := sorted[0] > sorted[n-1]

	i := sort.Search(n, func(k int) bool {
		if descending {
			return sorted[k] <= value
		}

		return sorted[k] >= value
	})

	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}

	if math.Abs(sorted[i]-value) < math.Abs(sorted[i-1]-value) {
		return i
	}

	return i - 1
}

// MaxIndex returns the index of the largest value, or -1 for an empty slice.
func MaxIndex(v []float64) int {
	if len(v) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}

	return best
}

// MinMax returns the smallest and largest values of v.
func MinMax(v []float64) (lo, hi float64) {
	if len(v) == 0 {
		return 0, 0
	}

	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}

		if x > hi {
			hi = x
		}
	}

	return lo, hi
}
