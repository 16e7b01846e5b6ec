package api

import (
	"net/http"
	"strconv"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/product"
	"github.com/gin-gonic/gin"
)

// ProductHandler contains the HTTP handlers for the product catalog API.
type ProductHandler struct {
	service *product.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// ProductRequest represents the JSON body for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required"`
}

// ListProducts handles GET /products. An optional category query parameter
// filters the catalog case-insensitively.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var (
		products []*domain.Product
		err      error
	)

	if category := c.Query("category"); category != "" {
		products, err = h.service.GetProductsByCategory(c.Request.Context(), category)
	} else {
		products, err = h.service.GetAllProducts(c.Request.Context())
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	found, err := h.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if found == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "Product not found",
			Code:    "NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, found)
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	p, ok := bindProduct(c)
	if !ok {
		return
	}

	created, err := h.service.CreateProduct(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles PUT /products/:id. The stored product is replaced
// wholesale; only the identity is carried forward.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	p, ok := bindProduct(c)
	if !ok {
		return
	}

	updated, err := h.service.UpdateProduct(c.Request.Context(), id, p)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "Product not found",
			Code:    "NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "Product not found",
			Code:    "NOT_FOUND",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid product id",
			Code:    "VALIDATION_ERROR",
		})
		return 0, false
	}
	return id, true
}

func bindProduct(c *gin.Context) (*domain.Product, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return nil, false
	}

	p, err := domain.NewProduct(req.Name, req.Description, req.Price, req.Category)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return p, true
}
