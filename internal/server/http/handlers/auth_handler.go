package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
	"github.com/nebulaeats/nebula/internal/server/http/middleware"
)

// AuthHandler processes one-time code sign-in.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// RequestCode handles POST /api/auth/otp.
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req dto.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RequestCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidEmail):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusAccepted)
}

// Verify handles POST /api/auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, token, err := h.facade.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidEmail):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidCode):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Token:   token,
		Profile: toProfileResponse(profile),
	})
}
