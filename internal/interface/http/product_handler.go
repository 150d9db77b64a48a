package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshbasket/api/internal/application"
	"github.com/freshbasket/api/pkg/response"
	"github.com/freshbasket/api/pkg/validation"
)

// ProductHandler exposes the public catalog reads and the role-gated writes.
type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
	InStock     *bool   `json:"inStock"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	InStock     *bool    `json:"inStock"`
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error(c, http.StatusInternalServerError, "Server error fetching products")
		return
	}
	response.Success(c, http.StatusOK, "products", gin.H{"products": products})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOr500(c, err, "get product failed")
		return
	}
	response.Success(c, http.StatusOK, "product", gin.H{"product": p})
}

// Search GET /api/products/search?q=
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required")
		return
	}
	products, err := h.Svc.Search(c.Request.Context(), q, 20)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error(c, http.StatusInternalServerError, "Server error searching products")
		return
	}
	response.Success(c, http.StatusOK, "search results", gin.H{"products": products})
}

// Create POST /api/products (vendor/admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	p, err := h.Svc.Create(c.Request.Context(), application.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		InStock:     inStock,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create product failed")
		response.Error(c, http.StatusInternalServerError, "Server error creating product")
		return
	}
	response.Success(c, http.StatusCreated, "product created", gin.H{"product": p})
}

// Update PUT /api/products/:id (vendor/admin)
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
	})
	if err != nil {
		h.notFoundOr500(c, err, "update product failed")
		return
	}
	response.Success(c, http.StatusOK, "product updated", gin.H{"product": p})
}

// Delete DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.notFoundOr500(c, err, "delete product failed")
		return
	}
	response.Success(c, http.StatusOK, "Product deleted", nil)
}

// UploadImage POST /api/products/:id/image (vendor/admin, multipart)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.notFoundOr500(c, err, "upload product image failed")
		return
	}
	response.Success(c, http.StatusOK, "image uploaded", gin.H{"product": p})
}

func (h *ProductHandler) notFoundOr500(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, application.ErrProductNotFound) {
		response.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	h.Logger.WithError(err).Error(logMsg)
	response.Error(c, http.StatusInternalServerError, "Server error")
}
