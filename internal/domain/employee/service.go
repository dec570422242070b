package employee

import "context"

// Service is the read-only employee directory backing admin screens.
type Service interface {
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, page, pageSize int) (EmployeeListResponse, error)
}
