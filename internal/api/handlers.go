package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/richardbarrera32/agrotracker/internal/model"
	"github.com/richardbarrera32/agrotracker/internal/series"
)

// PricesResponse carries everything the chart view needs for one selection.
// Stats is null when the return series has too few usable points.
type PricesResponse struct {
	Product   string              `json:"product"`
	City      string              `json:"city"`
	Interval  model.Interval      `json:"interval"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Rows      model.PriceTable    `json:"rows"`
	Returns   []model.ReturnPoint `json:"returns"`
	Stats     *model.RiskStats    `json:"stats"`
}

// LatestResponse is the latest reliable price for a product/city pair.
type LatestResponse struct {
	Product string             `json:"product"`
	City    string             `json:"city"`
	Record  *model.PriceRecord `json:"record"`
	Found   bool               `json:"found"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rep, fetchedAt, loaded := s.cache.LastRefresh()
	respondData(w, map[string]interface{}{
		"status":         "ok",
		"loaded":         loaded,
		"fetched_at":     fetchedAt,
		"rows_dropped":   rep.RowsDropped,
		"values_skipped": rep.ValuesSkipped,
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	table, err := s.cache.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondData(w, table.Products())
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	table, err := s.cache.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondData(w, table.Cities())
}

func (s *Server) handleIntervals(w http.ResponseWriter, r *http.Request) {
	respondData(w, model.Intervals)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	city := r.URL.Query().Get("city")
	if product == "" || city == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("product and city are required"))
		return
	}

	token := r.URL.Query().Get("interval")
	if token == "" {
		token = string(model.IntervalMax)
	}
	interval, err := model.ParseInterval(token)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	table, err := s.cache.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}

	today := s.now()
	start := series.ResolveWindow(interval, today, table.MinDate())
	rows := series.Filter(table, product, city, start, today)
	returns := series.ComputeReturns(rows)

	stats, err := series.RiskStats(returns)
	if err != nil && !errors.Is(err, series.ErrInsufficientData) {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondData(w, PricesResponse{
		Product:   product,
		City:      city,
		Interval:  interval,
		StartDate: start.Format("2006-01-02"),
		EndDate:   today.Format("2006-01-02"),
		Rows:      rows,
		Returns:   returns,
		Stats:     stats,
	})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	city := r.URL.Query().Get("city")
	if product == "" || city == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("product and city are required"))
		return
	}

	table, err := s.cache.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}

	resp := LatestResponse{Product: product, City: city}
	if rec, ok := series.LatestPrice(table, product, city, s.lookback, s.now()); ok {
		resp.Record = &rec
		resp.Found = true
	}
	respondData(w, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table, rep, err := s.refresher.Refresh(r.Context(), "MANUAL")
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondData(w, map[string]interface{}{
		"rows":           len(table),
		"rows_dropped":   rep.RowsDropped,
		"values_skipped": rep.ValuesSkipped,
		"took_ms":        time.Since(start).Milliseconds(),
	})
}
