// Package ratio holds the divide by zero safe arithmetic used by reports
package ratio

import "math"

// Ratio returns n/d, or 0 when d is not positive
func Ratio(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return n / d
}

// Of is Ratio for counts
func Of(n, d int) float64 { return Ratio(float64(n), float64(d)) }

// Percent is Of scaled to 0..100 for n <= d
func Percent(n, d int) float64 { return Of(n, d) * 100 }

// Round rounds to the nearest integer, halves away from zero
func Round(x float64) float64 { return math.Round(x) }

// Mean returns the arithmetic mean, 0 for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
