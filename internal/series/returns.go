package series

import "github.com/richardbarrera32/agrotracker/internal/model"

// ComputeReturns derives the daily percentage return series from a
// date-ascending price series. Element i carries p[i]/p[i-1] − 1 when both
// prices are non-nil and non-zero; otherwise nil. Element 0 is always nil.
func ComputeReturns(rows model.PriceTable) []model.ReturnPoint {
	out := make([]model.ReturnPoint, len(rows))
	for i, r := range rows {
		out[i] = model.ReturnPoint{Date: r.Date}
		if i == 0 {
			continue
		}
		cur, prev := r.PricePerKilo, rows[i-1].PricePerKilo
		if cur == nil || prev == nil || *cur == 0 || *prev == 0 {
			continue
		}
		ret := *cur / *prev - 1
		out[i].DailyReturn = &ret
	}
	return out
}
