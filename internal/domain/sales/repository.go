package sales

import (
	"context"
	"time"
)

// AssignmentRepository persists daily product assignments.
type AssignmentRepository interface {
	// GetForDay returns the assignment row for (employee, product, day) or
	// (nil, nil) when none exists.
	GetForDay(ctx context.Context, employeeID, productID string, day time.Time) (*Assignment, error)

	// HasRelationship reports whether any assignment, on any day, links the
	// employee to the product.
	HasRelationship(ctx context.Context, employeeID, productID string) (bool, error)

	// Upsert creates the (employee, product, day) row or updates its quantity
	// in place, relying on the unique constraint.
	Upsert(ctx context.Context, a Assignment) (Assignment, error)

	// UpdateReconciliation persists the recomputed status and expired quantity.
	UpdateReconciliation(ctx context.Context, id, status string, expiredQuantity int) error

	// ListByEmployeeAndDay returns all assignments for the employee's day.
	ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]Assignment, error)

	// ExpireStale marks assignments from past days that never saw a sale as
	// fully expired and returns how many rows changed.
	ExpireStale(ctx context.Context, before time.Time) (int64, error)
}

// SaleRepository persists the per-day sale owned by an assignment.
type SaleRepository interface {
	// Upsert writes the sale keyed by (employee, product, day): update in
	// place if one exists, create otherwise.
	Upsert(ctx context.Context, s Sale) (Sale, error)

	// SumQuantityForDay sums sale quantities for (employee, product, day).
	SumQuantityForDay(ctx context.Context, employeeID, productID string, day time.Time) (int, error)

	// ListByEmployeeAndDay returns the employee's sales for a day.
	ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]Sale, error)
}
