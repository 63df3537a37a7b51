// Package api exposes the price pipeline to the dashboard frontend over
// HTTP: catalog lookups, filtered price series with derived statistics,
// latest reliable prices, and manual cache refresh.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/richardbarrera32/agrotracker/internal/model"
	"github.com/richardbarrera32/agrotracker/internal/source"
)

// Refresher forces a reload of the cached table.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (model.PriceTable, source.Report, error)
}

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cache     *source.Cache
	refresher Refresher
	lookback  model.Interval
	now       func() time.Time
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cache *source.Cache, ref Refresher, lookback model.Interval) *Server {
	s := &Server{
		cache:     cache,
		refresher: ref,
		lookback:  lookback,
		now:       time.Now,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] api listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/products", s.handleProducts)
		r.Get("/cities", s.handleCities)
		r.Get("/intervals", s.handleIntervals)
		r.Get("/prices", s.handlePrices)
		r.Get("/latest", s.handleLatest)
		r.Post("/refresh", s.handleRefresh)
	})

	return r
}

// APIResponse is the uniform JSON envelope for all endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, APIResponse{Success: false, Error: err.Error()})
}
