package mathx

import "math/rand/v2"

// Lerp interpolates linearly between x and y. t=0 yields x, t=1 yields y.
func Lerp(x, y, t float64) float64 {
	return (1-t)*x + t*y
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandomRange returns a value in [min, max) drawn from r. A nil r uses the
// package-level source.
func RandomRange(r *rand.Rand, min, max float64) float64 {
	return float64frac(r)*(max-min) + min
}

// RandomInt returns an integer in [min, max) drawn from r.
func RandomInt(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	if r == nil {
		return min + rand.IntN(max-min)
	}
	return min + r.IntN(max-min)
}

// RandomItem returns a random element of items. It panics on an empty slice.
func RandomItem[T any](r *rand.Rand, items []T) T {
	if len(items) == 0 {
		panic("mathx: RandomItem on empty slice")
	}
	return items[RandomInt(r, 0, len(items))]
}

func float64frac(r *rand.Rand) float64 {
	if r == nil {
		return rand.Float64()
	}
	return r.Float64()
}
