package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductID is a value object for product identity.
type ProductID struct{ uuid.UUID }

// NewProductID creates a new ProductID from uuid.
func NewProductID(id uuid.UUID) ProductID { return ProductID{UUID: id} }

// String returns the canonical string form.
func (p ProductID) String() string { return p.UUID.String() }

// Product is a catalog entry owned by the user who created it.
type Product struct {
	ID          ProductID
	OwnerID     UserID
	Title       string
	Price       float64
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
