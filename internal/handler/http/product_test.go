package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fungigrow/storeapi/internal/handler/http/mocks"
	"github.com/fungigrow/storeapi/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_ListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcMock := mocks.NewMockProductService(ctrl)
	svcMock.EXPECT().ListProducts(gomock.Any()).Return([]models.Product{
		{Name: "Kit de Cultivo Ostra", Slug: "kit-de-cultivo-ostra", Price: 19990, IsActive: true},
	}, nil)

	req, err := http.NewRequest(http.MethodGet, "/api/products/", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h := NewProductHandler(svcMock).ListProducts()
	h(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []productPayload
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "kit-de-cultivo-ostra", got[0].Slug)
	assert.Equal(t, int64(19990), got[0].Price)
}

func TestProductHandler_GetProduct(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		setup          func(t *testing.T) *mocks.MockProductService
		wantStatusCode int
	}{
		{
			// 200 — product found
			name: "known_slug_return_200",
			slug: "kit-de-cultivo-ostra",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().GetProduct(gomock.Any(), "kit-de-cultivo-ostra").Return(&models.Product{
					Name: "Kit de Cultivo Ostra", Slug: "kit-de-cultivo-ostra", Price: 19990, IsActive: true,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — no active product with this slug
			name: "unknown_slug_return_404",
			slug: "ghost",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().GetProduct(gomock.Any(), "ghost").Return(nil, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/products/"+tt.slug, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			st := tt.setup(t)

			router := chi.NewRouter()
			router.Get("/api/products/{slug}", NewProductHandler(st).GetProduct())
			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestProductHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockProductService
		wantStatusCode int
	}{
		{
			// 201 — product created
			name: "valid_request_return_201",
			body: `{"name":"Kit de Cultivo Ostra","price":19990,"is_active":true}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(&models.Product{
					Name: "Kit de Cultivo Ostra", Slug: "kit-de-cultivo-ostra", Price: 19990, IsActive: true,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// 400 — missing required fields
			name: "missing_fields_return_400",
			body: `{"price":19990}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil, models.ErrMissingFields).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 409 — slug already exists
			name: "duplicate_slug_return_409",
			body: `{"name":"Kit de Cultivo Ostra","price":19990}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil, models.ErrConflictData).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/products/", strings.NewReader(tt.body))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			st := tt.setup(t)

			h := NewProductHandler(st).CreateProduct()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcMock := mocks.NewMockProductService(ctrl)
	svcMock.EXPECT().DeleteProduct(gomock.Any(), "kit-de-cultivo-ostra").Return(nil)

	req, err := http.NewRequest(http.MethodDelete, "/api/products/kit-de-cultivo-ostra", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router := chi.NewRouter()
	router.Delete("/api/products/{slug}", NewProductHandler(svcMock).DeleteProduct())
	router.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}
