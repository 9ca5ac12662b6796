package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
)

const (
	createProductSQL = `INSERT INTO products (id, owner_id, title, price, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	productColumns = `id, owner_id, title, price, description, image_url, created_at, updated_at`

	getProductByIDSQL    = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	listProductsByOwner  = `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at`
	updateProductSQL     = `UPDATE products
		SET title = $1, price = $2, description = $3, image_url = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7`
	deleteProductSQL = `DELETE FROM products WHERE id = $1 AND owner_id = $2`
)

// ProductStore implements ports.ProductStore on PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

// NewProductStore creates the store.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

// Create persists the product.
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	_, err := s.pool.Exec(ctx, createProductSQL,
		p.ID.UUID, p.OwnerID.UUID, p.Title, p.Price, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID returns (nil, nil) when no product matches.
func (s *ProductStore) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, getProductByIDSQL, id.UUID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListByOwner returns the owner's products, oldest first.
func (s *ProductStore) ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Product, error) {
	rows, err := s.pool.Query(ctx, listProductsByOwner, ownerID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update is scoped by owner; false means absent or not owned.
func (s *ProductStore) Update(ctx context.Context, p *domain.Product) (bool, error) {
	tag, err := s.pool.Exec(ctx, updateProductSQL,
		p.Title, p.Price, p.Description, p.ImageURL, p.UpdatedAt, p.ID.UUID, p.OwnerID.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete is scoped by owner; false means absent or not owned.
func (s *ProductStore) Delete(ctx context.Context, id domain.ProductID, ownerID domain.UserID) (bool, error) {
	tag, err := s.pool.Exec(ctx, deleteProductSQL, id.UUID, ownerID.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID.UUID, &p.OwnerID.UUID, &p.Title, &p.Price, &p.Description,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure ProductStore implements ports.ProductStore.
var _ ports.ProductStore = (*ProductStore)(nil)
