package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*domain.Product)}
}

func (s *fakeProductStore) Create(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID.String()] = &cp
	return nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id.String()]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) ListByOwner(_ context.Context, ownerID domain.UserID) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*domain.Product
	for _, p := range s.products {
		if p.OwnerID == ownerID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (s *fakeProductStore) Update(_ context.Context, p *domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.products[p.ID.String()]
	if !ok || current.OwnerID != p.OwnerID {
		return false, nil
	}
	cp := *p
	s.products[p.ID.String()] = &cp
	return true, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id domain.ProductID, ownerID domain.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.products[id.String()]
	if !ok || current.OwnerID != ownerID {
		return false, nil
	}
	delete(s.products, id.String())
	return true, nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	removed []string
}

func (s *fakeImageStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return nil
}

var (
	_ ports.ProductStore = (*fakeProductStore)(nil)
	_ ports.ImageStore   = (*fakeImageStore)(nil)
)

func createProduct(t *testing.T, store *fakeProductStore, owner domain.UserID, title, image string) *domain.Product {
	t.Helper()
	uc := NewCreateProduct(store)
	result, err := uc.Execute(context.Background(), CreateProductInput{
		OwnerID:     owner,
		Title:       title,
		Price:       19.99,
		Description: "a " + title,
		ImageURL:    image,
	})
	require.NoError(t, err)
	return result.Product
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	owner := domain.NewUserID(uuid.New())
	stranger := domain.NewUserID(uuid.New())

	t.Run("create and list are owner-scoped", func(t *testing.T) {
		store := newFakeProductStore()
		createProduct(t, store, owner, "book", "images/book.png")
		createProduct(t, store, stranger, "lamp", "images/lamp.png")

		list, err := NewListProducts(store).Execute(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "book", list[0].Title)
	})

	t.Run("update by non-owner is not found", func(t *testing.T) {
		store := newFakeProductStore()
		p := createProduct(t, store, owner, "book", "images/book.png")

		uc := NewUpdateProduct(store, &fakeImageStore{}, zerolog.Nop())
		_, err := uc.Execute(ctx, UpdateProductInput{ID: p.ID, OwnerID: stranger, Title: "stolen", Price: 1})
		assert.ErrorIs(t, err, domerrors.ErrNotFound)

		stored, err := store.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "book", stored.Title)
	})

	t.Run("replacing the image removes the old file", func(t *testing.T) {
		store := newFakeProductStore()
		images := &fakeImageStore{}
		p := createProduct(t, store, owner, "book", "images/old.png")

		uc := NewUpdateProduct(store, images, zerolog.Nop())
		result, err := uc.Execute(ctx, UpdateProductInput{
			ID: p.ID, OwnerID: owner, Title: "book", Price: 19.99, ImageURL: "images/new.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "images/new.png", result.Product.ImageURL)
		assert.Equal(t, []string{"images/old.png"}, images.removed)
	})

	t.Run("update keeps the image when none supplied", func(t *testing.T) {
		store := newFakeProductStore()
		images := &fakeImageStore{}
		p := createProduct(t, store, owner, "book", "images/book.png")

		uc := NewUpdateProduct(store, images, zerolog.Nop())
		result, err := uc.Execute(ctx, UpdateProductInput{ID: p.ID, OwnerID: owner, Title: "book 2", Price: 25})
		require.NoError(t, err)
		assert.Equal(t, "images/book.png", result.Product.ImageURL)
		assert.Empty(t, images.removed)
	})

	t.Run("delete removes the row and the image", func(t *testing.T) {
		store := newFakeProductStore()
		images := &fakeImageStore{}
		p := createProduct(t, store, owner, "book", "images/book.png")

		uc := NewDeleteProduct(store, images, zerolog.Nop())
		require.NoError(t, uc.Execute(ctx, DeleteProductInput{ID: p.ID, OwnerID: owner}))

		stored, err := store.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
		assert.Equal(t, []string{"images/book.png"}, images.removed)
	})

	t.Run("delete of a missing product is not found", func(t *testing.T) {
		store := newFakeProductStore()
		uc := NewDeleteProduct(store, &fakeImageStore{}, zerolog.Nop())
		err := uc.Execute(ctx, DeleteProductInput{ID: domain.NewProductID(uuid.New()), OwnerID: owner})
		assert.ErrorIs(t, err, domerrors.ErrNotFound)
	})
}
