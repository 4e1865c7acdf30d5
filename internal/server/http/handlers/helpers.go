package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/server/http/dto"
	"github.com/nebulaeats/nebula/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated profile identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, dto.CartItemResponse{
			ItemID:    it.ItemID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
		})
	}
	return dto.CartResponse{
		RestaurantID: cart.RestaurantID,
		Items:        items,
		TotalPrice:   cart.TotalPrice(),
		ItemCount:    cart.ItemCount(),
	}
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		RewardPoints: p.RewardPoints,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           order.ID,
		RestaurantID: order.RestaurantID,
		Total:        order.Total,
		Status:       string(order.Status),
		ScheduledFor: order.ScheduledFor,
		CreatedAt:    order.CreatedAt,
	}
}

func toRestaurantResponse(r model.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}
