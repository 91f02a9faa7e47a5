// Package valgen provides operand generators built from closures.
package valgen

import (
	"math"
	"math/rand"
)

// Gen returns the next operand each time it is called.
type Gen func() int64

// MakeConstGen always returns constant.
func MakeConstGen(constant int64) Gen {
	return func() int64 {
		return constant
	}
}

// MakeIncreasingGen returns start, start+step, start+2*step, ...
func MakeIncreasingGen(start, step int64) Gen {
	current := start - step
	return func() int64 {
		current += step
		return current
	}
}

// MakeRandomGen returns reproducible values in [lo, hi].
func MakeRandomGen(seed, lo, hi int64) Gen {
	if hi < lo {
		panic("valgen: empty range")
	}

	r := rand.New(rand.NewSource(seed))
	span := uint64(hi-lo) + 1

	switch {
	case span == 0:
		// [MinInt64, MaxInt64]
		return func() int64 {
			return int64(r.Uint64())
		}
	case span <= math.MaxInt64:
		return func() int64 {
			return lo + r.Int63n(int64(span))
		}
	default:
		return func() int64 {
			for {
				if v := r.Uint64(); v < span {
					return int64(uint64(lo) + v)
				}
			}
		}
	}
}

// NonZero wraps g and replaces zero results with one.
func NonZero(g Gen) Gen {
	return func() int64 {
		if v := g(); v != 0 {
			return v
		}
		return 1
	}
}

// Take draws n values from g.
func Take(g Gen, n int) []int64 {
	vals := make([]int64, n)
	for i := range vals {
		vals[i] = g()
	}
	return vals
}
