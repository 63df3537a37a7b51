package series

import (
	"testing"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

func TestResolveWindow(t *testing.T) {
	tableMin := day(2019, 2, 14)
	tests := []struct {
		name  string
		iv    model.Interval
		today time.Time
		want  time.Time
	}{
		{"one week", model.IntervalWeek, day(2024, 6, 15), day(2024, 6, 8)},
		{"year to date", model.IntervalYTD, day(2024, 6, 15), day(2024, 1, 1)},
		{"one month simple", model.IntervalMonth, day(2024, 6, 15), day(2024, 5, 15)},
		{"one month clamps to leap feb", model.IntervalMonth, day(2024, 3, 31), day(2024, 2, 29)},
		{"one month clamps to feb", model.IntervalMonth, day(2023, 3, 31), day(2023, 2, 28)},
		{"three months across year", model.IntervalQuarter, day(2024, 1, 15), day(2023, 10, 15)},
		{"one year", model.IntervalYear, day(2024, 6, 15), day(2023, 6, 15)},
		{"one year from leap day", model.IntervalYear, day(2024, 2, 29), day(2023, 2, 28)},
		{"five years", model.IntervalFiveYears, day(2024, 6, 15), day(2019, 6, 15)},
		{"max uses full table minimum", model.IntervalMax, day(2024, 6, 15), tableMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWindow(tt.iv, tt.today, tableMin)
			if !got.Equal(tt.want) {
				t.Errorf("ResolveWindow(%s, %s) = %s, want %s",
					tt.iv, tt.today.Format("2006-01-02"),
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestResolveWindow_TruncatesTimeOfDay(t *testing.T) {
	today := time.Date(2024, 6, 15, 17, 42, 3, 0, time.UTC)
	got := ResolveWindow(model.IntervalWeek, today, time.Time{})
	if !got.Equal(day(2024, 6, 8)) {
		t.Errorf("expected midnight-anchored start, got %v", got)
	}
}
