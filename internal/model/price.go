package model

import (
	"sort"
	"time"
)

// PriceRecord is a single observation of the canonical table.
// PricePerKilo is nil when the source value was missing or unparseable;
// such rows stay visible in table views but are excluded from numeric work.
type PriceRecord struct {
	Date         time.Time `json:"date"`
	Product      string    `json:"product"`
	City         string    `json:"city"`
	PricePerKilo *float64  `json:"price_per_kilo"`
}

// PriceTable is an ordered collection of price records. It is not
// necessarily sorted on load; filtering produces date-ascending output.
type PriceTable []PriceRecord

// Products returns the distinct product names present in the table, sorted.
func (t PriceTable) Products() []string {
	return t.distinct(func(r PriceRecord) string { return r.Product })
}

// Cities returns the distinct city names present in the table, sorted.
func (t PriceTable) Cities() []string {
	return t.distinct(func(r PriceRecord) string { return r.City })
}

func (t PriceTable) distinct(key func(PriceRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MinDate returns the earliest date in the table, or zero time when empty.
func (t PriceTable) MinDate() time.Time {
	var min time.Time
	for _, r := range t {
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
	}
	return min
}

// MaxDate returns the latest date in the table, or zero time when empty.
func (t PriceTable) MaxDate() time.Time {
	var max time.Time
	for _, r := range t {
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return max
}
