package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/go-chi/chi/v5"
)

// ProductService is interface for catalog operations
type ProductService interface {
	// ListProducts returns active products
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns an active product by slug
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	// CreateProduct creates a product
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// UpdateProduct updates a product by slug
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// DeleteProduct deletes a product by slug
	DeleteProduct(ctx context.Context, slug string) error
}

// ProductHandler represents HTTP handler for catalog requests
type ProductHandler struct {
	svc ProductService
}

// NewProductHandler creates new ProductHandler instance
func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productPayload struct {
	ID           uint64 `json:"id,omitempty"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Stock        int64  `json:"stock"`
	ImageURL     string `json:"image_url"`
	CategoryName string `json:"category_name"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

func toProductPayload(p *models.Product) productPayload {
	return productPayload{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		CategoryName: p.CategoryName,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func (pp *productPayload) toModel() models.Product {
	return models.Product{
		Name:         pp.Name,
		Slug:         pp.Slug,
		Description:  pp.Description,
		Price:        pp.Price,
		Stock:        pp.Stock,
		ImageURL:     pp.ImageURL,
		CategoryName: pp.CategoryName,
		IsActive:     pp.IsActive,
	}
}

// ListProducts returns active products
// 200 — list of products, possibly empty.
func (ph *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := ph.svc.ListProducts(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := []productPayload{}
		for i := range products {
			resp = append(resp, toProductPayload(&products[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// GetProduct returns a product by slug
// 200 — product found;
// 404 — no active product with this slug.
func (ph *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := ph.svc.GetProduct(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toProductPayload(product))
	}
}

// CreateProduct creates a product (admin)
// 201 — product created;
// 400 — malformed request;
// 409 — slug already exists.
func (ph *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		product := req.toModel()
		created, err := ph.svc.CreateProduct(r.Context(), &product)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrMissingFields):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, models.ErrConflictData):
				writeError(w, http.StatusConflict, "product already exists")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toProductPayload(created))
	}
}

// UpdateProduct updates a product by slug (admin)
// 200 — product updated;
// 400 — malformed request;
// 404 — no product with this slug.
func (ph *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		product := req.toModel()
		product.Slug = chi.URLParam(r, "slug")

		updated, err := ph.svc.UpdateProduct(r.Context(), &product)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toProductPayload(updated))
	}
}

// DeleteProduct deletes a product by slug (admin)
// 204 — product deleted;
// 404 — no product with this slug.
func (ph *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ph.svc.DeleteProduct(r.Context(), chi.URLParam(r, "slug")); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
