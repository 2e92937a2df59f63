package service

import (
	"context"

	"github.com/fungigrow/storeapi/internal/models"
)

// ProductRepository is interface for interacting with product data
type ProductRepository interface {
	// CreateProduct inserts new product to database
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	// ListActiveProducts returns active products ordered by name
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	// GetProductBySlug returns product by slug
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	// UpdateProduct updates product fields by slug
	UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	// DeleteProduct deletes product by slug
	DeleteProduct(ctx context.Context, slug string) error
}

// ProductService implements catalog operations
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates new ProductService instance
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListProducts returns active products for the storefront
func (ps *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return ps.repo.ListActiveProducts(ctx)
}

// GetProduct returns an active product by slug. Inactive products are
// hidden from the public surface.
func (ps *ProductService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := ps.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, models.ErrDataNotFound
	}
	return product, nil
}

// CreateProduct creates a product, generating the slug from the name when
// not provided
func (ps *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Name == "" || product.Price <= 0 {
		return nil, models.ErrMissingFields
	}
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}
	return ps.repo.CreateProduct(ctx, product)
}

// UpdateProduct updates a product by slug
func (ps *ProductService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Slug == "" {
		return nil, models.ErrMissingFields
	}
	return ps.repo.UpdateProduct(ctx, product)
}

// DeleteProduct deletes a product by slug
func (ps *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	return ps.repo.DeleteProduct(ctx, slug)
}
