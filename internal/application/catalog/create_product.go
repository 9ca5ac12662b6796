package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// CreateProductInput carries validated product fields.
type CreateProductInput struct {
	OwnerID     domain.UserID
	Title       string
	Price       float64
	Description string
	ImageURL    string
}

// CreateProductResult returns the created product.
type CreateProductResult struct {
	Product *domain.Product
}

// CreateProduct persists a new product owned by the authenticated user.
type CreateProduct struct {
	products ports.ProductStore
}

// NewCreateProduct builds the use case.
func NewCreateProduct(products ports.ProductStore) *CreateProduct {
	return &CreateProduct{products: products}
}

// Execute creates the product.
func (uc *CreateProduct) Execute(ctx context.Context, input CreateProductInput) (*CreateProductResult, error) {
	now := time.Now()
	product := &domain.Product{
		ID:          domain.NewProductID(uuid.New()),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	return &CreateProductResult{Product: product}, nil
}
