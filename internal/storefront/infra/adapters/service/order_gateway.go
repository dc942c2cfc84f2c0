package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/ports"
)

// HTTPOrderGateway is the adapter that talks to the Order service over its
// HTTP+JSON surface. It is independent of the product gateway; the two
// backends are separately owned and versioned.
type HTTPOrderGateway struct {
	baseURL string
	client  *http.Client
}

var _ ports.OrderGateway = (*HTTPOrderGateway)(nil)

// NewHTTPOrderGateway returns an OrderGateway bound to the given base URL.
func NewHTTPOrderGateway(baseURL string, client *http.Client) ports.OrderGateway {
	if client == nil {
		client = defaultClient()
	}
	return &HTTPOrderGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type createOrderRequest struct {
	Items []entity.OrderItem `json:"items"`
}

// List fetches all orders: GET /orders/.
func (g *HTTPOrderGateway) List(ctx context.Context) ([]entity.Order, error) {
	req, err := newRequest(ctx, http.MethodGet, g.baseURL+"/orders/", "", nil)
	if err != nil {
		return nil, err
	}
	var orders []entity.Order
	if err := do(g.client, req, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create places an order: POST /orders/ with {items: [{product_id,
// quantity}, ...]}. Prices are never part of the payload; the Order
// service computes the total itself.
func (g *HTTPOrderGateway) Create(ctx context.Context, items []entity.OrderItem) (*entity.Order, error) {
	payload, err := json.Marshal(createOrderRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	req, err := newRequest(ctx, http.MethodPost, g.baseURL+"/orders/", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	var created entity.Order
	if err := do(g.client, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
