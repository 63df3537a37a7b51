package model

import "time"

// ReturnPoint is one element of a daily return series. DailyReturn is nil
// when no prior observation exists or either price is missing or zero.
type ReturnPoint struct {
	Date        time.Time `json:"date"`
	DailyReturn *float64  `json:"daily_return"`
}

// RiskStats summarizes the distribution of a return series.
// Std is the population standard deviation (divisor N). Skewness (Fisher)
// and Kurtosis (excess) are nil when fewer than 3 usable points exist or
// the series has zero variance.
type RiskStats struct {
	Mean     float64  `json:"mean"`
	Std      float64  `json:"std"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
	Count    int      `json:"count"`
}
