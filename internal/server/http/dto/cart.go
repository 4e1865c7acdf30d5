package dto

// AddItemRequest adds one unit of a menu item to the cart.
type AddItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

// QuantityRequest applies a signed delta to a cart line's quantity.
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// CartItemResponse describes one cart line.
type CartItemResponse struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CartResponse describes the whole cart with derived totals.
type CartResponse struct {
	RestaurantID string             `json:"restaurant_id,omitempty"`
	Items        []CartItemResponse `json:"items"`
	TotalPrice   float64            `json:"total_price"`
	ItemCount    int                `json:"item_count"`
}
