package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// SheetFetcher retrieves the published spreadsheet as CSV over HTTP.
type SheetFetcher struct {
	URL    string
	Client *http.Client
}

// NewSheetFetcher creates a fetcher for the given published CSV URL.
func NewSheetFetcher(url string, timeout time.Duration) *SheetFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SheetFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (f *SheetFetcher) Name() string { return "sheet" }

// FetchTable downloads the sheet, parses the CSV, and normalizes it into
// the canonical table. Any transport or parse failure is reported as
// ErrSourceUnavailable; a malformed response never yields a partial table.
func (f *SheetFetcher) FetchTable(ctx context.Context) (table model.PriceTable, rep Report, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: create request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Report{}, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: parse csv: %v", ErrSourceUnavailable, err)
	}
	if len(records) < 1 {
		return nil, Report{}, fmt.Errorf("%w: empty response", ErrSourceUnavailable)
	}

	raw := RawTable{Headers: records[0]}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(raw.Headers))
		for i, h := range raw.Headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		raw.Rows = append(raw.Rows, row)
	}

	table, rep = Normalize(raw)
	return table, rep, nil
}
