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

// CartHandler exposes the owner-scoped cart. The owner id always comes from
// the authenticated context, never from the client payload.
type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type setQuantityRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// Get GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	cart, err := h.Svc.GetCart(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("get cart failed")
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	response.Success(c, http.StatusOK, "cart", gin.H{"id": cart.ID, "items": cart.Items})
}

// SetQuantity POST /api/cart {productId, quantity}
func (h *CartHandler) SetQuantity(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	res, err := h.Svc.SetQuantity(c.Request.Context(), uid, req.ProductID, *req.Quantity)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		h.Logger.WithError(err).Error("set cart quantity failed")
		response.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	response.Success(c, http.StatusOK, "cart updated", gin.H{
		"productId": res.ProductID,
		"quantity":  res.Quantity,
		"cartId":    res.CartID,
	})
}
