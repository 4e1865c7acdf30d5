package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	cart, err := h.facade.Cart(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MenuItemID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.AddToCart(c.Request.Context(), userID, req.MenuItemID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrRestaurantConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

// UpdateQuantity handles PATCH /api/cart/items/:itemID.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := CurrentUserID(c)
	itemID := c.Param("itemID")

	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.ChangeQuantity(c.Request.Context(), userID, itemID, req.Delta)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /api/cart/items/:itemID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := CurrentUserID(c)
	itemID := c.Param("itemID")

	cart, err := h.facade.RemoveFromCart(c.Request.Context(), userID, itemID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := CurrentUserID(c)

	cart, err := h.facade.ClearCart(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}
