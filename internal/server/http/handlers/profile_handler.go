package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
)

// ProfileHandler serves the signed-in profile and its reward history.
type ProfileHandler struct {
	auth    AuthFacade
	catalog CatalogFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(auth AuthFacade, catalog CatalogFacade) *ProfileHandler {
	return &ProfileHandler{auth: auth, catalog: catalog}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	profile, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Rewards handles GET /api/profile/rewards.
func (h *ProfileHandler) Rewards(c *gin.Context) {
	userID := CurrentUserID(c)
	history, err := h.catalog.RewardHistory(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(history) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RewardResponse, 0, len(history))
	for _, tx := range history {
		response = append(response, dto.RewardResponse{
			OrderID:      tx.OrderID,
			PointsEarned: tx.PointsEarned,
			CreatedAt:    tx.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
