package recorder

import "time"

// RefreshEvent describes one attempt to reload the canonical table from
// the remote sheet, whether scheduled, manual, or at startup.
type RefreshEvent struct {
	Trigger       string // "STARTUP", "SCHEDULED", "MANUAL"
	Source        string
	Rows          int
	RowsDropped   int
	ValuesSkipped int
	MinDate       time.Time
	MaxDate       time.Time
	Duration      time.Duration
	Error         string // empty on success
}

// Recorder persists refresh history for later inspection.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	Close() error
}
