package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
)

type SalesJobs struct {
	salesService sales.Service
}

func NewSalesJobs(salesService sales.Service) *SalesJobs {
	return &SalesJobs{salesService: salesService}
}

func (j *SalesJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Every(time.Hour, "expire_stale_assignments", j.ExpireStaleAssignments)
}

// ExpireStaleAssignments resolves past-day assignments nobody submitted sales
// for. The sweep is idempotent, so running it hourly is harmless.
func (j *SalesJobs) ExpireStaleAssignments(ctx context.Context) error {
	count, err := j.salesService.ExpireStaleAssignments(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		slog.Info("stale assignments expired", "count", count)
	}
	return nil
}
