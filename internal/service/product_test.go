package service

import (
	"context"
	"testing"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*models.Product{}}
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := f.products[p.Slug]; ok {
		return nil, models.ErrConflictData
	}
	cp := *p
	f.products[p.Slug] = &cp
	return &cp, nil
}

func (f *fakeProductRepo) ListActiveProducts(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	p, ok := f.products[slug]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := f.products[p.Slug]; !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *p
	f.products[p.Slug] = &cp
	return &cp, nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, slug string) error {
	if _, ok := f.products[slug]; !ok {
		return models.ErrDataNotFound
	}
	delete(f.products, slug)
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	product, err := svc.CreateProduct(context.Background(), &models.Product{
		Name:     "Kit de Cultivo Ostra",
		Price:    19990,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "kit-de-cultivo-ostra", product.Slug)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.CreateProduct(context.Background(), &models.Product{Name: "", Price: 1000})
	assert.ErrorIs(t, err, models.ErrMissingFields)

	_, err = svc.CreateProduct(context.Background(), &models.Product{Name: "Kit", Price: 0})
	assert.ErrorIs(t, err, models.ErrMissingFields)
}

func TestGetProductHidesInactive(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	_, err := repo.CreateProduct(context.Background(), &models.Product{
		Name:     "Descontinuado",
		Slug:     "descontinuado",
		Price:    1000,
		IsActive: false,
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "descontinuado")

	assert.ErrorIs(t, err, models.ErrDataNotFound)
}
