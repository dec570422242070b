package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/employee"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, full_name, position, city, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.FullName, &e.Position, &e.City, &e.CreatedAt, &e.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return e, nil
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context, page, pageSize int) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if pageSize == 0 {
		pageSize = 20
	}
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT id, user_id, full_name, position, city, created_at, updated_at
		FROM employees
		ORDER BY full_name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(&e.ID, &e.UserID, &e.FullName, &e.Position, &e.City, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}
