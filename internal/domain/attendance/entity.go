package attendance

import (
	"time"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// Record is one employee's attendance for one calendar day. Date is the UTC
// midnight bucket of the check-in instant; there is at most one row per
// (employee_id, date), enforced by a unique constraint.
type Record struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	CheckInUndone  bool
	CheckOutUndone bool
	Status         string
	WorkHours      *float64
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}
