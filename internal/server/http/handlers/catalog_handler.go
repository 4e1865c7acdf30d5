package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
)

// CatalogHandler serves restaurant and menu reads plus review submission.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Restaurants handles GET /api/restaurants.
func (h *CatalogHandler) Restaurants(c *gin.Context) {
	restaurants, err := h.facade.Restaurants(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		response = append(response, toRestaurantResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

// Menu handles GET /api/restaurants/:id/menu.
func (h *CatalogHandler) Menu(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, dto.MenuItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
		})
	}

	c.JSON(http.StatusOK, response)
}

// SubmitReview handles POST /api/reviews.
func (h *CatalogHandler) SubmitReview(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err := h.facade.SubmitReview(c.Request.Context(), userID, req.OrderID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidRating):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotDelivered):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}
