package catalog

import (
	"context"
	"fmt"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// ListProducts returns the authenticated owner's products.
type ListProducts struct {
	products ports.ProductStore
}

// NewListProducts builds the use case.
func NewListProducts(products ports.ProductStore) *ListProducts {
	return &ListProducts{products: products}
}

// Execute lists products for the owner.
func (uc *ListProducts) Execute(ctx context.Context, ownerID domain.UserID) ([]*domain.Product, error) {
	list, err := uc.products.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	return list, nil
}
