package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) sales.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// GetForDay implements sales.AssignmentRepository.
func (r *assignmentRepository) GetForDay(ctx context.Context, employeeID, productID string, day time.Time) (*sales.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, product_id, quantity, assigned_at,
			   status, expired_quantity, created_at, updated_at
		FROM employee_products
		WHERE employee_id = $1
		  AND product_id = $2
		  AND assigned_at = $3
		LIMIT 1
	`

	var a sales.Assignment
	err := q.QueryRow(ctx, query, employeeID, productID, day).Scan(
		&a.ID, &a.EmployeeID, &a.ProductID, &a.Quantity, &a.AssignedAt,
		&a.Status, &a.ExpiredQuantity, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No assignment for this day
		}
		return nil, fmt.Errorf("failed to get assignment for day: %w", err)
	}

	return &a, nil
}

// HasRelationship implements sales.AssignmentRepository.
func (r *assignmentRepository) HasRelationship(ctx context.Context, employeeID, productID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_products
			WHERE employee_id = $1 AND product_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee product relationship: %w", err)
	}

	return exists, nil
}

// Upsert implements sales.AssignmentRepository. The unique constraint on
// (employee_id, product_id, assigned_at) makes concurrent upserts converge on
// one row.
func (r *assignmentRepository) Upsert(ctx context.Context, a sales.Assignment) (sales.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_products (
			employee_id, product_id, quantity, assigned_at, status, expired_quantity
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (employee_id, product_id, assigned_at)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, status, expired_quantity, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.ProductID,
		a.Quantity,
		a.AssignedAt,
		a.Status,
		a.ExpiredQuantity,
	).Scan(&a.ID, &a.Status, &a.ExpiredQuantity, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return sales.Assignment{}, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	return a, nil
}

// UpdateReconciliation implements sales.AssignmentRepository.
func (r *assignmentRepository) UpdateReconciliation(ctx context.Context, id, status string, expiredQuantity int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_products
		SET status = $1,
			expired_quantity = $2,
			updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, status, expiredQuantity, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment reconciliation: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return sales.ErrAssignmentNotFound
	}

	return nil
}

// ExpireStale implements sales.AssignmentRepository. Only rows still in the
// assigned status are touched; anything a sale already reconciled keeps its
// computed status.
func (r *assignmentRepository) ExpireStale(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_products
		SET status = $1,
			expired_quantity = quantity,
			updated_at = NOW()
		WHERE assigned_at < $2
		  AND status = $3
	`

	commandTag, err := q.Exec(ctx, query, sales.StatusExpired, before, sales.StatusAssigned)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale assignments: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// ListByEmployeeAndDay implements sales.AssignmentRepository.
func (r *assignmentRepository) ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]sales.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.product_id, a.quantity, a.assigned_at,
			   a.status, a.expired_quantity, a.created_at, a.updated_at,
			   p.name AS product_name
		FROM employee_products a
		LEFT JOIN products p ON p.id = a.product_id
		WHERE a.employee_id = $1
		  AND a.assigned_at = $2
		ORDER BY p.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []sales.Assignment
	for rows.Next() {
		var a sales.Assignment
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ProductID, &a.Quantity, &a.AssignedAt,
			&a.Status, &a.ExpiredQuantity, &a.CreatedAt, &a.UpdatedAt,
			&a.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
