// Package scoremath holds the small numeric helpers shared by the engines.
package scoremath

import "math"

// CosineSimilarity returns dot(a,b)/(|a||b|) over the common prefix of a and
// b. It returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	n := min(len(a), len(b))
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WeightedAverageUpdate returns the mean after adding v to n samples with
// mean avg.
func WeightedAverageUpdate(avg float64, n int, v float64) float64 {
	count := float64(n)
	return (avg*count + v) / (count + 1)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Mean returns the arithmetic mean of vs, or 0 for an empty slice.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
