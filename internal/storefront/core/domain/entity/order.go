package entity

// OrderItem is one line of an order submission: product identifier and
// quantity only. The price is deliberately not sent; the Order service is
// the sole authority on pricing at fulfillment time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is an Order service record. Status is server-owned; the client
// treats it as opaque text for display.
type Order struct {
	ID          string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items,omitempty"`
}
