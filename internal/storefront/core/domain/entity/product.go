package entity

// Product is the client's read-only copy of a Product service record.
// It is accurate only as of the last successful catalog fetch; the server
// owns every field, including the timestamps.
type Product struct {
	ID            string  `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// NewProduct is the client-supplied payload for creating a product.
// The server assigns the identifier, image reference and timestamps.
type NewProduct struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}
