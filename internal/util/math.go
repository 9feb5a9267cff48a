package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coerce returns value, limited to the range [min, max]
func Coerce[T constraints.Integer | constraints.Float](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Rms calculates the root mean square of all values in the given array
func Rms(values []float64) float64 {
	if len(values) <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(values)))
}

// MaxAbs returns the larger of |a| and |b|
func MaxAbs(a float64, b float64) float64 {
	return math.Max(math.Abs(a), math.Abs(b))
}
