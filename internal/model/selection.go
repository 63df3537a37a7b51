package model

import (
	"fmt"
	"time"
)

// Interval names a relative time window for charting.
type Interval string

const (
	IntervalWeek      Interval = "1w"
	IntervalMonth     Interval = "1m"
	IntervalQuarter   Interval = "3m"
	IntervalYTD       Interval = "ytd"
	IntervalYear      Interval = "1y"
	IntervalFiveYears Interval = "5y"
	IntervalMax       Interval = "max"
)

// Intervals lists all valid interval tokens in display order.
var Intervals = []Interval{
	IntervalWeek,
	IntervalMonth,
	IntervalQuarter,
	IntervalYTD,
	IntervalYear,
	IntervalFiveYears,
	IntervalMax,
}

// ParseInterval converts a token string into an Interval.
// Unknown tokens are an error, never a silent fallback.
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if s == string(iv) {
			return iv, nil
		}
	}
	return "", fmt.Errorf("unknown interval token %q", s)
}

// Selection captures one user interaction with the dashboard.
// It is ephemeral and never persisted.
type Selection struct {
	Product       string
	City          string
	Interval      Interval
	ReferenceDate time.Time
}
