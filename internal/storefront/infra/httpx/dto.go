package httpx

import (
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
)

// CreateProductRequest mirrors the create-product form fields.
type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// AddToCartRequest carries the data the add-to-cart button holds in the
// original UI: identifier plus the displayed name and price, captured at
// click time.
type AddToCartRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// ProductListView is either a product listing or a placeholder message,
// never both.
type ProductListView struct {
	Products    []entity.Product `json:"products"`
	Placeholder string           `json:"placeholder,omitempty"`
}

type OrderListView struct {
	Orders      []entity.Order `json:"orders"`
	Placeholder string         `json:"placeholder,omitempty"`
}

type CartView struct {
	Items []entity.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// StateResponse is the full rendered state returned by GET /ui/state and
// after every UI event, so the poller always has a coherent picture.
type StateResponse struct {
	ProductList  ProductListView `json:"product_list"`
	OrderList    OrderListView   `json:"order_list"`
	Cart         CartView        `json:"cart"`
	Notification *Notification   `json:"notification,omitempty"`
	FormVersion  int             `json:"form_version"`
}

// WorklogEntryResponse is one row of the workflow audit trail.
type WorklogEntryResponse struct {
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	UpdatedAt  string `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
