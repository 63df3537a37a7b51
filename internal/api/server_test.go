package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
	"github.com/richardbarrera32/agrotracker/internal/source"
)

type fakeRefresher struct {
	table model.PriceTable
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(_ context.Context, _ string) (model.PriceTable, source.Report, error) {
	f.calls++
	return f.table, source.Report{}, f.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(v float64) *float64 { return &v }

func dashboardTable() model.PriceTable {
	return model.PriceTable{
		{Date: day(2024, 6, 10), Product: "Papa", City: "Bogotá", PricePerKilo: price(100)},
		{Date: day(2024, 6, 11), Product: "Papa", City: "Bogotá", PricePerKilo: price(110)},
		{Date: day(2024, 6, 12), Product: "Papa", City: "Bogotá", PricePerKilo: price(99)},
		{Date: day(2024, 6, 11), Product: "Yuca", City: "Medellín", PricePerKilo: price(50)},
	}
}

func testServer(t *testing.T, table model.PriceTable) *Server {
	t.Helper()
	cache := source.NewCache(&source.MockFetcher{Err: source.ErrSourceUnavailable})
	cache.Inject(table)
	srv := NewServer(cache, &fakeRefresher{table: table}, model.IntervalMonth)
	srv.now = func() time.Time { return day(2024, 6, 15) }
	return srv
}

func doRequest(t *testing.T, srv *Server, method, target string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, resp
}

func TestHandleProducts(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/products")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
	products, ok := resp.Data.([]interface{})
	if !ok || len(products) != 2 {
		t.Fatalf("expected 2 products, got %v", resp.Data)
	}
	if products[0] != "Papa" || products[1] != "Yuca" {
		t.Errorf("expected sorted products, got %v", products)
	}
}

func TestHandlePrices(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/prices?product=Papa&city=Bogotá&interval=1m")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}

	data, _ := json.Marshal(resp.Data)
	var pr PricesResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		t.Fatalf("decode prices payload: %v", err)
	}
	if len(pr.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(pr.Rows))
	}
	if pr.StartDate != "2024-05-15" || pr.EndDate != "2024-06-15" {
		t.Errorf("unexpected window %s..%s", pr.StartDate, pr.EndDate)
	}
	if len(pr.Returns) != 3 || pr.Returns[0].DailyReturn != nil {
		t.Errorf("unexpected returns %v", pr.Returns)
	}
	if pr.Stats == nil || pr.Stats.Count != 2 {
		t.Errorf("expected stats over 2 returns, got %+v", pr.Stats)
	}
}

func TestHandlePrices_DefaultsToMax(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/prices?product=Papa&city=Bogotá")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
	data, _ := json.Marshal(resp.Data)
	var pr PricesResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		t.Fatal(err)
	}
	if pr.Interval != model.IntervalMax {
		t.Errorf("expected default interval max, got %s", pr.Interval)
	}
	if pr.StartDate != "2024-06-10" {
		t.Errorf("max window must start at the table minimum, got %s", pr.StartDate)
	}
}

func TestHandlePrices_EmptySelection(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/prices?product=Papa&city=Cali")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("empty selection must not error: %d %+v", rec.Code, resp)
	}
	data, _ := json.Marshal(resp.Data)
	var pr PricesResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		t.Fatal(err)
	}
	if len(pr.Rows) != 0 {
		t.Errorf("expected empty rows, got %d", len(pr.Rows))
	}
	if pr.Stats != nil {
		t.Errorf("stats must be null for insufficient data, got %+v", pr.Stats)
	}
}

func TestHandlePrices_BadRequests(t *testing.T) {
	srv := testServer(t, dashboardTable())
	tests := []struct {
		name   string
		target string
	}{
		{"missing product", "/api/prices?city=Bogotá"},
		{"missing city", "/api/prices?product=Papa"},
		{"unknown interval", "/api/prices?product=Papa&city=Bogotá&interval=2d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, srv, http.MethodGet, tt.target)
			if rec.Code != http.StatusBadRequest || resp.Success {
				t.Errorf("expected 400 failure, got %d %+v", rec.Code, resp)
			}
		})
	}
}

func TestHandleLatest(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/latest?product=Papa&city=Bogotá")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
	data, _ := json.Marshal(resp.Data)
	var lr LatestResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		t.Fatal(err)
	}
	if !lr.Found || lr.Record == nil || *lr.Record.PricePerKilo != 99 {
		t.Errorf("expected latest price 99, got %+v", lr)
	}
}

func TestHandleRefresh(t *testing.T) {
	srv := testServer(t, dashboardTable())
	ref := srv.refresher.(*fakeRefresher)

	rec, resp := doRequest(t, srv, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
	if ref.calls != 1 {
		t.Errorf("expected 1 refresh call, got %d", ref.calls)
	}
}

func TestHandleIntervals(t *testing.T) {
	srv := testServer(t, dashboardTable())
	rec, resp := doRequest(t, srv, http.MethodGet, "/api/intervals")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
	ivs, ok := resp.Data.([]interface{})
	if !ok || len(ivs) != len(model.Intervals) {
		t.Fatalf("expected %d intervals, got %v", len(model.Intervals), resp.Data)
	}
}
