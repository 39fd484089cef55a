package content

import (
	"context"

	"itsolutions/internal/domain"
)

type ServiceStore struct {
	*Collection[domain.Service]
}

// Create stores a new service as active.
func (s ServiceStore) Create(ctx context.Context, in domain.Service) (domain.Service, error) {
	in.IsActive = true
	return s.Collection.Create(ctx, in)
}

type ProductStore struct {
	*Collection[domain.Product]
}

// Create stores a new product as active, in stock when it has stock.
func (s ProductStore) Create(ctx context.Context, in domain.Product) (domain.Product, error) {
	in.InStock = in.StockQuantity > 0
	in.IsActive = true
	return s.Collection.Create(ctx, in)
}
