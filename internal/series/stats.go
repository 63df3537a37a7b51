package series

import (
	"errors"
	"math"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// ErrInsufficientData is returned when a statistic cannot be computed for
// the current selection. Callers report the value as unavailable instead of
// surfacing a NaN.
var ErrInsufficientData = errors.New("insufficient data points")

// RiskStats computes mean, population standard deviation, Fisher skewness,
// and excess kurtosis over the non-nil values of a return series. Fewer
// than 2 usable points is ErrInsufficientData; skewness and kurtosis
// additionally need at least 3 points and non-zero variance, and are nil
// otherwise.
func RiskStats(returns []model.ReturnPoint) (*model.RiskStats, error) {
	var xs []float64
	for _, p := range returns {
		if p.DailyReturn != nil {
			xs = append(xs, *p.DailyReturn)
		}
	}
	n := len(xs)
	if n < 2 {
		return nil, ErrInsufficientData
	}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	var m2, m3, m4 float64
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)

	stats := &model.RiskStats{
		Mean:  mean,
		Std:   math.Sqrt(m2),
		Count: n,
	}
	if n >= 3 && m2 > 0 {
		skew := m3 / math.Pow(m2, 1.5)
		kurt := m4/(m2*m2) - 3
		stats.Skewness = &skew
		stats.Kurtosis = &kurt
	}
	return stats, nil
}
