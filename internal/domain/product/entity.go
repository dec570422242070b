package product

import "time"

// Product is the catalog entry assignments refer to. Product management is a
// collaborator concern; the engines only need lookups.
type Product struct {
	ID        string
	Name      string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
