package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/richardbarrera32/agrotracker/internal/model"
	"github.com/richardbarrera32/agrotracker/internal/recorder"
	"github.com/richardbarrera32/agrotracker/internal/source"
)

// Refresher reloads the cached table and records the outcome. It is shared
// by the cron task, the startup load, and the manual refresh endpoint.
type Refresher struct {
	Cache    *source.Cache
	Source   string
	Recorder recorder.Recorder
}

// Refresh refetches the table, replaces the cache, and records a refresh
// event tagged with the given trigger.
func (r *Refresher) Refresh(ctx context.Context, trigger string) (model.PriceTable, source.Report, error) {
	start := time.Now()
	table, rep, err := r.Cache.Refresh(ctx)

	evt := &recorder.RefreshEvent{
		Trigger:       trigger,
		Source:        r.Source,
		Rows:          len(table),
		RowsDropped:   rep.RowsDropped,
		ValuesSkipped: rep.ValuesSkipped,
		MinDate:       table.MinDate(),
		MaxDate:       table.MaxDate(),
		Duration:      time.Since(start),
	}
	if err != nil {
		evt.Error = err.Error()
	}
	if recErr := r.Recorder.RecordRefresh(evt); recErr != nil {
		log.Printf("[ERROR] record refresh: %v", recErr)
	}
	return table, rep, err
}

// Scheduler runs the periodic cache refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher *Refresher
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ref *Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: ref,
		Ctx:       ctx,
	}
}

// RegisterRefresh registers the periodic refresh task.
func (s *Scheduler) RegisterRefresh(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	table, rep, err := s.Refresher.Refresh(s.Ctx, "SCHEDULED")
	if err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
		return
	}
	log.Printf("[INFO] refresh ok: %d rows (%d dropped, %d prices skipped)",
		len(table), rep.RowsDropped, rep.ValuesSkipped)
}
