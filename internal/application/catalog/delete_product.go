package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// DeleteProductInput identifies the product and its owner.
type DeleteProductInput struct {
	ID      domain.ProductID
	OwnerID domain.UserID
}

// DeleteProduct removes a product and its stored image. Image removal is
// best-effort and logged.
type DeleteProduct struct {
	products ports.ProductStore
	images   ports.ImageStore
	log      zerolog.Logger
}

// NewDeleteProduct builds the use case.
func NewDeleteProduct(products ports.ProductStore, images ports.ImageStore, log zerolog.Logger) *DeleteProduct {
	return &DeleteProduct{products: products, images: images, log: log}
}

// Execute deletes the product scoped by owner.
func (uc *DeleteProduct) Execute(ctx context.Context, input DeleteProductInput) error {
	current, err := uc.products.GetByID(ctx, input.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if current == nil {
		return domerrors.ErrNotFound
	}

	ok, err := uc.products.Delete(ctx, input.ID, input.OwnerID)
	if err != nil {
		return fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if !ok {
		return domerrors.ErrNotFound
	}

	if current.ImageURL != "" {
		if err := uc.images.Remove(ctx, current.ImageURL); err != nil {
			uc.log.Warn().Err(err).Str("image", current.ImageURL).Msg("product image not removed")
		}
	}
	return nil
}
