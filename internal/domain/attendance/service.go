package attendance

import (
	"context"
)

// Service defines business logic for the daily check-in/check-out machine.
// Employee identity comes from the JWT claims in ctx.
type Service interface {
	// CheckIn creates today's record after window validation.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// UndoCheckIn deletes today's record entirely; check-in becomes retriable.
	UndoCheckIn(ctx context.Context) error

	// CheckOut closes today's record and computes work hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// UndoCheckOut reverts the check-out once; the undo flag is permanent.
	UndoCheckOut(ctx context.Context) error

	// GetMyRecords lists the authenticated employee's records, newest day first.
	GetMyRecords(ctx context.Context, filter ListFilter) (ListResponse, error)

	// ListRecords lists records across employees (admin).
	ListRecords(ctx context.Context, filter ListFilter) (ListResponse, error)
}
