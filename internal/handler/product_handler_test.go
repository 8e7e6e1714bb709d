package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"letsgo-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_GetAll(t *testing.T) {
	listed := []model.Product{
		{ID: "prod-1", Name: "모던 패브릭 소파", Price: 890000, Stock: 5, IsActive: true},
		{ID: "prod-2", Name: "원목 의자", Price: 120000, Stock: 20, IsActive: true},
	}

	t.Run("lists products with default pagination", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("GetAll", mock.Anything, 10, 0).Return(listed, nil)

		h := NewProductHandler(products, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()
		h.GetAll(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		products.AssertExpectations(t)
	})

	t.Run("keyword switches to search", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("Search", mock.Anything, "소파", 10).Return(listed[:1], nil)

		h := NewProductHandler(products, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/products?keyword=소파", nil)
		rec := httptest.NewRecorder()
		h.GetAll(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "모던 패브릭 소파")
		products.AssertExpectations(t)
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		h := NewProductHandler(new(MockProductRepository), zerolog.Nop())

		for _, target := range []string{
			"/api/products?limit=abc",
			"/api/products?limit=0",
			"/api/products?offset=-1",
		} {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			h.GetAll(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		h := NewProductHandler(new(MockProductRepository), zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		rec := httptest.NewRecorder()
		h.GetAll(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("returns a product", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("GetByID", mock.Anything, "prod-1").
			Return(&model.Product{ID: "prod-1", Name: "모던 패브릭 소파", Price: 890000}, nil)

		h := NewProductHandler(products, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil)
		rec := httptest.NewRecorder()
		h.GetByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "모던 패브릭 소파")
	})

	t.Run("404 for unknown product", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		h := NewProductHandler(products, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
		rec := httptest.NewRecorder()
		h.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing id segment", func(t *testing.T) {
		h := NewProductHandler(new(MockProductRepository), zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
		rec := httptest.NewRecorder()
		h.GetByID(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
