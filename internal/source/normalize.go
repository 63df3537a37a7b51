package source

import (
	"strconv"
	"strings"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// RawTable is the parsed but uninterpreted sheet: original headers plus
// rows keyed by header label.
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// Report counts the non-fatal issues absorbed during normalization.
type Report struct {
	RowsDropped   int // rows with an unparseable date
	ValuesSkipped int // prices that failed numeric coercion (row kept, price nil)
}

// Canonical field names.
const (
	fieldDate    = "date"
	fieldProduct = "product"
	fieldCity    = "city"
	fieldPrice   = "price_per_kilo"
)

// columnAliases maps lowercased source column labels to canonical fields.
// The published sheet uses Spanish labels; canonical names are accepted too
// so that normalizing already-normalized data is a no-op.
var columnAliases = map[string]string{
	"fecha":           fieldDate,
	"date":            fieldDate,
	"producto":        fieldProduct,
	"product":         fieldProduct,
	"ciudad":          fieldCity,
	"city":            fieldCity,
	"precio (cop/kg)": fieldPrice,
	"precio por kilo": fieldPrice,
	"precio":          fieldPrice,
	"price":           fieldPrice,
	"price_per_kilo":  fieldPrice,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
}

// Normalize converts a raw sheet into the canonical table. Rows with an
// unparseable date are dropped; unparseable prices become nil but keep the
// row. Product and city are trimmed, case preserved. The output date field
// has no nulls.
func Normalize(raw RawTable) (model.PriceTable, Report) {
	cols := make(map[string]string, len(raw.Headers)) // canonical -> source label
	for _, h := range raw.Headers {
		if canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, taken := cols[canonical]; !taken {
				cols[canonical] = h
			}
		}
	}

	var rep Report
	table := make(model.PriceTable, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		date, ok := parseDate(row[cols[fieldDate]])
		if !ok {
			rep.RowsDropped++
			continue
		}
		rec := model.PriceRecord{
			Date:    date,
			Product: strings.TrimSpace(row[cols[fieldProduct]]),
			City:    strings.TrimSpace(row[cols[fieldCity]]),
		}
		if cell := strings.TrimSpace(row[cols[fieldPrice]]); cell == "" {
			// missing price, not a coercion failure
		} else if price, ok := parsePrice(cell); ok {
			rec.PricePerKilo = &price
		} else {
			rep.ValuesSkipped++
		}
		table = append(table, rec)
	}
	return table, rep
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parsePrice coerces a sheet cell to a number. Currency symbols and spaces
// are stripped; "1.234,56" style values are read as Colombian formatting.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// dot as thousands separator, comma as decimal mark
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
