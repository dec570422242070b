package attendance

import (
	"context"
	"time"
)

// Repository persists attendance records. Create must surface a violation of
// the (employee_id, date) unique constraint as ErrInvalidTransition so that
// the loser of two concurrent check-ins fails deterministically.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
