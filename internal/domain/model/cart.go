package model

import domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"

// CartLineItem is one distinct menu item held in the cart.
type CartLineItem struct {
	ItemID       string  `json:"itemId"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	RestaurantID string  `json:"restaurantId"`
	Quantity     int     `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l CartLineItem) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart aggregates line items for at most one restaurant at a time.
// All mutations go through the methods below so the single-restaurant
// invariant cannot be bypassed.
type Cart struct {
	RestaurantID string         `json:"restaurantId,omitempty"`
	Items        []CartLineItem `json:"items"`
}

// Empty reports whether the cart holds no line items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Add inserts the item with quantity 1 or increments the matching line.
// An item from a different restaurant than the cart's owner is rejected
// with ErrRestaurantConflict; the caller must Clear first.
func (c *Cart) Add(item CartLineItem) error {
	if !c.Empty() && c.RestaurantID != item.RestaurantID {
		return domainErrors.ErrRestaurantConflict
	}
	for i := range c.Items {
		if c.Items[i].ItemID == item.ItemID {
			c.Items[i].Quantity++
			return nil
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
	c.RestaurantID = item.RestaurantID
	return nil
}

// Remove deletes the matching line item.
func (c *Cart) Remove(itemID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	if c.Empty() {
		c.Clear()
	}
}

// UpdateQuantity applies delta to the matching line item's quantity,
// clamped at a floor of 0. A resulting quantity of 0 removes the line.
func (c *Cart) UpdateQuantity(itemID string, delta int) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ItemID == itemID {
			item.Quantity += delta
			if item.Quantity <= 0 {
				continue
			}
		}
		kept = append(kept, item)
	}
	c.Items = kept
	if c.Empty() {
		c.Clear()
	}
}

// Clear empties the cart and resets the owning restaurant.
func (c *Cart) Clear() {
	c.Items = nil
	c.RestaurantID = ""
}

// TotalPrice sums unit price times quantity over all line items.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount sums quantities over all line items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
