package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// UpdateProductInput carries the new field values. An empty ImageURL keeps
// the current image.
type UpdateProductInput struct {
	ID          domain.ProductID
	OwnerID     domain.UserID
	Title       string
	Price       float64
	Description string
	ImageURL    string
}

// UpdateProductResult returns the updated product.
type UpdateProductResult struct {
	Product *domain.Product
}

// UpdateProduct rewrites a product's fields, scoped to its owner. A product
// owned by someone else is reported as not found. Replacing the image
// removes the old file best-effort.
type UpdateProduct struct {
	products ports.ProductStore
	images   ports.ImageStore
	log      zerolog.Logger
}

// NewUpdateProduct builds the use case.
func NewUpdateProduct(products ports.ProductStore, images ports.ImageStore, log zerolog.Logger) *UpdateProduct {
	return &UpdateProduct{products: products, images: images, log: log}
}

// Execute applies the update.
func (uc *UpdateProduct) Execute(ctx context.Context, input UpdateProductInput) (*UpdateProductResult, error) {
	current, err := uc.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if current == nil || current.OwnerID != input.OwnerID {
		return nil, domerrors.ErrNotFound
	}

	updated := *current
	updated.Title = input.Title
	updated.Price = input.Price
	updated.Description = input.Description
	if input.ImageURL != "" {
		updated.ImageURL = input.ImageURL
	}
	updated.UpdatedAt = time.Now()

	ok, err := uc.products.Update(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if !ok {
		return nil, domerrors.ErrNotFound
	}

	if input.ImageURL != "" && current.ImageURL != "" && current.ImageURL != input.ImageURL {
		if err := uc.images.Remove(ctx, current.ImageURL); err != nil {
			uc.log.Warn().Err(err).Str("image", current.ImageURL).Msg("stale image not removed")
		}
	}
	return &UpdateProductResult{Product: &updated}, nil
}
