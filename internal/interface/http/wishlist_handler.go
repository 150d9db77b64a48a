package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshbasket/api/internal/application"
	"github.com/freshbasket/api/internal/interface/middleware"
	"github.com/freshbasket/api/pkg/response"
	"github.com/freshbasket/api/pkg/validation"
)

// WishlistHandler exposes the owner-scoped wishlist toggle and read.
type WishlistHandler struct {
	Svc    *application.WishlistService
	Logger *logrus.Logger
}

func NewWishlistHandler(svc *application.WishlistService, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{Svc: svc, Logger: logger}
}

type toggleRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Get GET /api/wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	items, err := h.Svc.GetWishlist(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("get wishlist failed")
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	response.Success(c, http.StatusOK, "wishlist", gin.H{"items": items})
}

// Toggle POST /api/wishlist {productId}
func (h *WishlistHandler) Toggle(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	items, action, err := h.Svc.Toggle(c.Request.Context(), uid, req.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		h.Logger.WithError(err).Error("toggle wishlist failed")
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	response.Success(c, http.StatusOK, action, gin.H{"items": items})
}
