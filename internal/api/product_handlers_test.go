package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/memory"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/product"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductRouter() *gin.Engine {
	service := product.NewService(memory.NewRepository())
	payments := NewPaymentHandler(nil, "")
	return SetupRouter(payments, NewProductHandler(service), gin.TestMode)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, router *gin.Engine, name string, price int64, category string) domain.Product {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/products", ProductRequest{
		Name:     name,
		Price:    price,
		Category: category,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestStatusProbe(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "accepted")
}

func TestCreateProduct_AssignsIdentity(t *testing.T) {
	router := setupProductRouter()

	created := createProduct(t, router, "Leather pouf", 4990, "decor")
	assert.NotZero(t, created.ID)
	assert.True(t, created.Available)
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{"name": "Pouf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct_BlankName(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodPost, "/api/products", ProductRequest{
		Name:     "   ",
		Price:    100,
		Category: "decor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetProduct(t *testing.T) {
	router := setupProductRouter()
	created := createProduct(t, router, "Pouf", 4990, "decor")

	w := doJSON(t, router, http.MethodGet, "/api/products/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, created, found)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProduct_BadID(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	router := setupProductRouter()
	createProduct(t, router, "Pouf", 4990, "Decor")
	createProduct(t, router, "Mint tea", 350, "food")

	w := doJSON(t, router, http.MethodGet, "/api/products?category=decor", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Pouf", products[0].Name)
}

func TestListProducts_Empty(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateProduct(t *testing.T) {
	router := setupProductRouter()
	created := createProduct(t, router, "Pouf", 4990, "decor")

	w := doJSON(t, router, http.MethodPut, "/api/products/"+itoa(created.ID), ProductRequest{
		Name:     "Large pouf",
		Price:    5990,
		Category: "furniture",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Large pouf", updated.Name)
	assert.Equal(t, "furniture", updated.Category)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodPut, "/api/products/99", ProductRequest{
		Name:     "Pouf",
		Price:    4990,
		Category: "decor",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	router := setupProductRouter()
	created := createProduct(t, router, "Pouf", 4990, "decor")

	w := doJSON(t, router, http.MethodDelete, "/api/products/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router := setupProductRouter()

	w := doJSON(t, router, http.MethodDelete, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
