package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
)

// OrderHandler manages checkout, order history, and live tracking endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	userID := CurrentUserID(c)

	// An empty body means an immediate order; ContentLength is -1 for
	// chunked requests, so only an EOF from the decoder signals no body.
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), userID, req.ScheduledFor)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCartEmpty), errors.Is(err, domainErrors.ErrNoRestaurant):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotSignedIn):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.PlacementResponse{
		Success:      result.Success,
		OrderID:      result.OrderID,
		Total:        result.Total,
		PointsEarned: result.PointsEarned,
		Error:        result.Error,
	}
	if !result.Success {
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/orders/:id.
func (h *OrderHandler) Detail(c *gin.Context) {
	userID := CurrentUserID(c)
	detail, err := h.facade.OrderDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// Track handles GET /api/orders/:id/events as a server-sent event stream.
func (h *OrderHandler) Track(c *gin.Context) {
	userID := CurrentUserID(c)
	updates, err := h.facade.TrackOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		update, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("status", dto.TrackingEventResponse{
			Status:   string(update.Status),
			Progress: update.Progress,
		})
		return true
	})
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(req.Status)
	if !status.Known() {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RequestStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

func toOrderDetailResponse(detail *model.OrderDetail) dto.OrderDetailResponse {
	lines := make([]dto.OrderLineResponse, 0, len(detail.Lines))
	for _, l := range detail.Lines {
		lines = append(lines, dto.OrderLineResponse{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	return dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(detail.Order),
		Restaurant:    toRestaurantResponse(detail.Restaurant),
		Lines:         lines,
		Progress:      detail.Status.ProgressIndex(),
	}
}
