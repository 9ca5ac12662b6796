package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/catalog"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
	"github.com/kamiour/backoffice/internal/infrastructure/http/middleware"
)

// ProductsHandler exposes the owner-scoped catalog CRUD. All routes require
// a logged-in session.
type ProductsHandler struct {
	create       *catalog.CreateProduct
	update       *catalog.UpdateProduct
	delete       *catalog.DeleteProduct
	list         *catalog.ListProducts
	storeTimeout time.Duration
	validate     *validator.Validate
	log          zerolog.Logger
}

// NewProductsHandler wires the catalog use cases. storeTimeout bounds store
// calls per request.
func NewProductsHandler(create *catalog.CreateProduct, update *catalog.UpdateProduct, del *catalog.DeleteProduct, list *catalog.ListProducts, storeTimeout time.Duration, log zerolog.Logger) *ProductsHandler {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &ProductsHandler{
		create:       create,
		update:       update,
		delete:       del,
		list:         list,
		storeTimeout: storeTimeout,
		validate:     validator.New(),
		log:          log,
	}
}

func (h *ProductsHandler) storeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.storeTimeout)
}

type productBody struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=2000"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=512"`
}

func productJSON(p *domain.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID.String(),
		"title":       p.Title,
		"price":       p.Price,
		"description": p.Description,
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	title := SanitizeTitle(body.Title)
	if title == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid title")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	result, err := h.create.Execute(ctx, catalog.CreateProductInput{
		OwnerID:     session.UserID,
		Title:       title,
		Price:       body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create product failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, productJSON(result.Product))
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	products, err := h.list.Execute(ctx, session.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, productJSON(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": out})
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid product id")
		return
	}
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	title := SanitizeTitle(body.Title)
	if title == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid title")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	result, err := h.update.Execute(ctx, catalog.UpdateProductInput{
		ID:          domain.NewProductID(productID),
		OwnerID:     session.UserID,
		Title:       title,
		Price:       body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		h.log.Error().Err(err).Msg("update product failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, productJSON(result.Product))
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid product id")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	err = h.delete.Execute(ctx, catalog.DeleteProductInput{
		ID:      domain.NewProductID(productID),
		OwnerID: session.UserID,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		h.log.Error().Err(err).Msg("delete product failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
