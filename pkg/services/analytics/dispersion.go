package analytics

import "math"

// Dispersion summarizes the spread of a set of bucket values.
type Dispersion struct {
	Mean                   float64
	StdDev                 float64
	CoefficientOfVariation float64 // percent
	ActiveCount            int
}

// AnalyzeDispersion computes mean, standard deviation and coefficient of
// variation. The mean divides by divisorCount; the variance only takes entries
// greater than zero into account and divides by their count, so empty buckets
// do not distort the spread. It returns false with fewer than two active entries.
func AnalyzeDispersion(values []float64, divisorCount int) (Dispersion, bool) {
	if divisorCount <= 0 {
		return Dispersion{}, false
	}

	var sum float64
	active := 0
	for _, v := range values {
		sum += v
		if v > 0 {
			active++
		}
	}
	if active < 2 {
		return Dispersion{}, false
	}

	mean := sum / float64(divisorCount)
	if mean <= 0 {
		return Dispersion{}, false
	}

	var squares float64
	for _, v := range values {
		if v > 0 {
			d := v - mean
			squares += d * d
		}
	}
	stddev := math.Sqrt(squares / float64(active))

	return Dispersion{
		Mean:                   mean,
		StdDev:                 stddev,
		CoefficientOfVariation: stddev / mean * 100,
		ActiveCount:            active,
	}, true
}

// MonthlyVariability labels a monthly coefficient of variation.
func MonthlyVariability(cv float64) string {
	switch {
	case cv > 50:
		return "HIGH variability"
	case cv > 25:
		return "MODERATE variability"
	default:
		return "LOW variability"
	}
}

// SeasonalBalance labels a seasonal coefficient of variation.
func SeasonalBalance(cv float64) string {
	switch {
	case cv < 15:
		return "Excellent balance"
	case cv < 30:
		return "Good balance"
	case cv < 50:
		return "Moderate imbalance"
	default:
		return "High imbalance"
	}
}
