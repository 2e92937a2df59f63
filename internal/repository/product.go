package repository

import (
	"context"
	"errors"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	productColumns = `id, name, slug, description, price, stock, image_url,
						category_name, is_active, created_at, updated_at`

	insertProductQuery = `
						INSERT INTO products (name, slug, description, price, stock, image_url, category_name, is_active)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
						RETURNING ` + productColumns

	selectActiveProductsQuery = `
						SELECT ` + productColumns + ` FROM products
						WHERE is_active = TRUE
						ORDER BY name
`
	selectProductBySlugQuery = `
						SELECT ` + productColumns + ` FROM products
						WHERE slug = $1
`
	updateProductQuery = `
						UPDATE products
						SET name = $1, description = $2, price = $3, stock = $4,
							image_url = $5, category_name = $6, is_active = $7, updated_at = now()
						WHERE slug = $8
						RETURNING ` + productColumns

	deleteProductQuery = `
						DELETE FROM products
						WHERE slug = $1
`
)

// ProductRepository provides access to product rows
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock,
		&p.ImageURL, &p.CategoryName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// CreateProduct inserts new product to database
func (pr *ProductRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := pr.db.QueryRow(ctx, insertProductQuery,
		p.Name, p.Slug, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryName, p.IsActive)
	if err := scanProduct(row, p); err != nil {
		if errCode := pr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return p, nil
}

// ListActiveProducts returns active products ordered by name
func (pr *ProductRepository) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := pr.db.Query(ctx, selectActiveProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		p := models.Product{}
		if err := scanProduct(rows, &p); err != nil {
			continue
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProductBySlug returns product by slug
func (pr *ProductRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p := models.Product{}
	if err := scanProduct(pr.db.QueryRow(ctx, selectProductBySlugQuery, slug), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &p, nil
}

// UpdateProduct updates product fields by slug
func (pr *ProductRepository) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := pr.db.QueryRow(ctx, updateProductQuery,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryName, p.IsActive, p.Slug)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return p, nil
}

// DeleteProduct deletes product by slug
func (pr *ProductRepository) DeleteProduct(ctx context.Context, slug string) error {
	cmd, err := pr.db.Exec(ctx, deleteProductQuery, slug)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
