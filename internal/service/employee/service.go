package employee

import (
	"context"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	repo employee.Repository
}

func NewEmployeeService(repo employee.Repository) employee.Service {
	return &EmployeeServiceImpl{repo: repo}
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e), nil
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, page, pageSize int) (employee.EmployeeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	employees, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return employee.EmployeeListResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = toResponse(e)
	}

	return employee.EmployeeListResponse{
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		Employees:  responses,
	}, nil
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:       e.ID,
		UserID:   e.UserID,
		FullName: e.FullName,
		Position: e.Position,
		City:     e.City,
	}
}
