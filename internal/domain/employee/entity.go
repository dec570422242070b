package employee

import "time"

// Employee is the worker the daily engines operate on. Full employee CRUD is
// a collaborator concern; the engines need identity lookups only.
type Employee struct {
	ID        string
	UserID    *string
	FullName  string
	Position  *string
	City      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
