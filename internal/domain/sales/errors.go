package sales

import "errors"

// Sales domain errors
var (
	// ErrNotAssigned means the product has no assignment relationship to the
	// employee at all, on any day.
	ErrNotAssigned = errors.New("product is not assigned to this employee")

	// ErrNoAssignmentToday means the relationship exists but no assignment row
	// covers today's bucket.
	ErrNoAssignmentToday = errors.New("no assignment exists for today")

	// ErrQuantityOutOfRange means the sale quantity is negative or exceeds the
	// owning assignment's quantity.
	ErrQuantityOutOfRange = errors.New("sale quantity is outside the assigned range")

	// ErrAssignmentNotFound is returned by lookups for a missing assignment row.
	ErrAssignmentNotFound = errors.New("assignment not found")
)
