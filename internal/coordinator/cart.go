package coordinator

import "github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"

// Cart is the mutable set of selections the user is building toward an
// order. It is owned exclusively by one Coordinator for the lifetime of a
// session and has no server-side representation until an order is placed.
//
// Cart is not safe for concurrent use on its own; the owning Coordinator's
// mutex serializes all access.
type Cart struct {
	items []entity.CartItem
}

// AddItem increments the quantity of the existing line item with the same
// product ID, or appends a new line with quantity 1. The name and price
// are captured as given and never re-synced with the catalog. AddItem
// never fails.
func (c *Cart) AddItem(productID, name string, unitPrice float64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, entity.CartItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []entity.CartItem {
	out := make([]entity.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums quantity times the unit price captured at add time. Catalog
// price changes after an item was added do not affect the result.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// OrderItems serializes the cart for submission: product identifier and
// quantity only, prices deliberately omitted.
func (c *Cart) OrderItems() []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return out
}
