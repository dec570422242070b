package sales

import (
	"context"
)

// Service defines business logic for assignment-to-sale reconciliation.
type Service interface {
	// RecordSales upserts one sale per entry for today's local-midnight bucket
	// and recomputes each touched assignment's status. All entries are
	// validated first; any failure aborts the whole request before a write.
	RecordSales(ctx context.Context, entries []SaleInput) (RecordSalesResponse, error)

	// UpsertAssignment creates or re-quantifies today's assignment (admin).
	UpsertAssignment(ctx context.Context, req UpsertAssignmentRequest) (AssignmentResponse, error)

	// GetMyDay returns the authenticated employee's assignments and sales for
	// today's bucket.
	GetMyDay(ctx context.Context) (DailyOverviewResponse, error)

	// ExpireStaleAssignments sweeps past-day assignments still sitting in the
	// assigned status and marks them expired. Run from the scheduler, not a
	// request.
	ExpireStaleAssignments(ctx context.Context) (int64, error)
}
