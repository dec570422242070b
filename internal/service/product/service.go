package product

import (
	"context"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/product"
)

type ProductServiceImpl struct {
	repo product.Repository
}

func NewProductService(repo product.Repository) product.Service {
	return &ProductServiceImpl{repo: repo}
}

// List implements product.Service.
func (s *ProductServiceImpl) List(ctx context.Context) ([]product.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]product.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = product.ProductResponse{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
		}
	}

	return responses, nil
}
