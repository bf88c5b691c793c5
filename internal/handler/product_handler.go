package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/problem"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	defaultSort     = "id"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		problem.MalformedJSON(c)
		return
	}

	if err := req.Validate(); err != nil {
		problem.FromError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		problem.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		problem.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		problem.MalformedJSON(c)
		return
	}

	if err := req.Validate(); err != nil {
		problem.FromError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		problem.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProductByID(c.Request.Context(), id); err != nil {
		problem.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, ok := h.queryInt(c, "page", 0)
	if !ok {
		return
	}
	size, ok := h.queryInt(c, "size", defaultPageSize)
	if !ok {
		return
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	sortField, descending := repository.ParseSort(c.DefaultQuery("sort", defaultSort))

	result, err := h.productService.GetAllProducts(c.Request.Context(), repository.PageRequest{
		Page:       page,
		Size:       size,
		SortField:  sortField,
		Descending: descending,
	})
	if err != nil {
		problem.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// productID parses the id path parameter, rejecting non-numeric values.
func (h *ProductHandler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		problem.TypeMismatch(c, "id")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		problem.TypeMismatch(c, name)
		return 0, false
	}
	return value, true
}
