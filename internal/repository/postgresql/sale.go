package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
)

type saleRepository struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) sales.SaleRepository {
	return &saleRepository{db: db}
}

// Upsert implements sales.SaleRepository. A day's sale is keyed by
// (employee_id, product_id, date); resubmission replaces the row instead of
// stacking a second one.
func (r *saleRepository) Upsert(ctx context.Context, s sales.Sale) (sales.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sales (
			employee_id, product_id, assignment_id, quantity, amount, date, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (employee_id, product_id, date)
		DO UPDATE SET
			assignment_id = EXCLUDED.assignment_id,
			quantity = EXCLUDED.quantity,
			amount = EXCLUDED.amount,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID,
		s.ProductID,
		s.AssignmentID,
		s.Quantity,
		s.Amount,
		s.Date,
		s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return sales.Sale{}, fmt.Errorf("failed to upsert sale: %w", err)
	}

	return s, nil
}

// SumQuantityForDay implements sales.SaleRepository.
func (r *saleRepository) SumQuantityForDay(ctx context.Context, employeeID, productID string, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE employee_id = $1
		  AND product_id = $2
		  AND date = $3
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, productID, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sale quantity: %w", err)
	}

	return total, nil
}

// ListByEmployeeAndDay implements sales.SaleRepository.
func (r *saleRepository) ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]sales.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.product_id, s.assignment_id,
			   s.quantity, s.amount, s.date, s.notes, s.created_at, s.updated_at,
			   p.name AS product_name
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.employee_id = $1
		  AND s.date = $2
		ORDER BY p.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var result []sales.Sale
	for rows.Next() {
		var s sales.Sale
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.ProductID, &s.AssignmentID,
			&s.Quantity, &s.Amount, &s.Date, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&s.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		result = append(result, s)
	}

	return result, nil
}
