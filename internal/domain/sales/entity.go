package sales

import (
	"time"
)

const (
	StatusAssigned      = "assigned"
	StatusPartiallySold = "partially_sold"
	StatusSold          = "sold"
	StatusExpired       = "expired"
)

// Assignment is a daily allotment of product units handed to an employee to
// sell. AssignedAt is the server-local midnight bucket; there is exactly one
// row per (employee_id, product_id, assigned_at) and it is upserted, never
// duplicated. After reconciliation Quantity = sold quantity + ExpiredQuantity.
type Assignment struct {
	ID              string
	EmployeeID      string
	ProductID       string
	Quantity        int
	AssignedAt      time.Time
	Status          string
	ExpiredQuantity int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	ProductName *string
}

// Sale is the (at most one) sale an assignment owns for a day. Repeated
// submissions for the same (employee, product, day) overwrite the row.
type Sale struct {
	ID           string
	EmployeeID   string
	ProductID    string
	AssignmentID string
	Quantity     int
	Amount       float64
	Date         time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	ProductName *string
}

// StatusFor classifies an assignment from the summed sale quantity. The
// classification is recomputed from source sales on every write, never
// maintained incrementally; that keeps it self-healing after a missed write.
func StatusFor(assignedQty, soldQty int) string {
	switch {
	case soldQty == 0:
		return StatusExpired
	case soldQty < assignedQty:
		return StatusPartiallySold
	default:
		return StatusSold
	}
}

// ExpiredFor returns the units that went unsold.
func ExpiredFor(assignedQty, soldQty int) int {
	if soldQty >= assignedQty {
		return 0
	}
	return assignedQty - soldQty
}
