// Package source retrieves the published price sheet, normalizes it into
// the canonical table, and memoizes the result for the process lifetime.
package source

import (
	"context"
	"errors"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// ErrSourceUnavailable indicates the remote sheet could not be reached or
// returned malformed content. It always aborts the current load; a partial
// table is never returned in its place.
var ErrSourceUnavailable = errors.New("price source unavailable")

// Fetcher retrieves the raw sheet and yields the normalized canonical table.
type Fetcher interface {
	FetchTable(ctx context.Context) (model.PriceTable, Report, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Table  model.PriceTable
	Report Report
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTable(_ context.Context) (model.PriceTable, Report, error) {
	m.Calls++
	if m.Err != nil {
		return nil, Report{}, m.Err
	}
	return m.Table, m.Report, nil
}
