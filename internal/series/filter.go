// Package series holds the pure filter-and-derive pipeline between the
// cached canonical table and the dashboard: selection filtering, time
// window resolution, daily returns, and risk statistics.
package series

import (
	"sort"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// Filter selects rows matching product and city exactly (case-sensitive,
// post-trim) with date in [start, end] inclusive, sorted ascending by date.
// Rows on the same date keep their original relative order. No matches
// yields an empty table, not an error.
func Filter(table model.PriceTable, product, city string, start, end time.Time) model.PriceTable {
	out := make(model.PriceTable, 0)
	for _, r := range table {
		if r.Product != product || r.City != city {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// LatestPrice returns the most recent record with a non-nil price for the
// given product and city within [asOf − lookback window, asOf]. The lookback
// is configured independently from the chart window. The boolean is false
// when no reliable price exists in the window.
func LatestPrice(table model.PriceTable, product, city string, lookback model.Interval, asOf time.Time) (model.PriceRecord, bool) {
	start := ResolveWindow(lookback, asOf, table.MinDate())
	rows := Filter(table, product, city, start, asOf)
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].PricePerKilo != nil {
			return rows[i], true
		}
	}
	return model.PriceRecord{}, false
}
