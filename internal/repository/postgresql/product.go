package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/product"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type productRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.Repository {
	return &productRepository{db: db}
}

// GetByID implements product.Repository.
func (r *productRepository) GetByID(ctx context.Context, id string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p product.Product
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return p, nil
}

// List implements product.Repository.
func (r *productRepository) List(ctx context.Context) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, price, created_at, updated_at
		FROM products
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}
