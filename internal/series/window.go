package series

import (
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// ResolveWindow maps an interval token to the concrete start date of the
// charting window. Windows are anchored to the wall-clock reference date
// (not the latest date of the filtered series); only IntervalMax looks at
// the table, using the minimum date of the full unfiltered dataset.
//
// Month and year offsets use calendar arithmetic with end-of-month
// clamping: Mar 31 minus one month is the last day of February.
func ResolveWindow(iv model.Interval, today time.Time, tableMin time.Time) time.Time {
	today = truncateToDay(today)
	switch iv {
	case model.IntervalWeek:
		return today.AddDate(0, 0, -7)
	case model.IntervalMonth:
		return addMonthsClamped(today, -1)
	case model.IntervalQuarter:
		return addMonthsClamped(today, -3)
	case model.IntervalYTD:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	case model.IntervalYear:
		return addMonthsClamped(today, -12)
	case model.IntervalFiveYears:
		return addMonthsClamped(today, -60)
	default: // IntervalMax
		return tableMin
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addMonthsClamped shifts t by the given number of months, clamping the day
// to the last valid day of the target month. Go's AddDate would instead
// normalize Mar 31 − 1 month into early March.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	mo := int(m) - 1 + months
	y += mo / 12
	mo %= 12
	if mo < 0 {
		mo += 12
		y--
	}
	month := time.Month(mo + 1)
	if last := daysInMonth(y, month); d > last {
		d = last
	}
	return time.Date(y, month, d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
