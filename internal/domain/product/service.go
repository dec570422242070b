package product

import "context"

// Service is the read-only product catalog.
type Service interface {
	List(ctx context.Context) ([]ProductResponse, error)
}
