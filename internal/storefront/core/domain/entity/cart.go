package entity

// CartItem is one (product, quantity) selection the user is building toward
// an order. Name and UnitPrice are captured at add-to-cart time and are
// never re-synced if the catalog changes before checkout.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
