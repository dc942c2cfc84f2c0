package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/ports"
)

// HTTPProductGateway is the adapter that talks to the Product service over
// its HTTP+JSON surface.
type HTTPProductGateway struct {
	baseURL string
	client  *http.Client
}

// Ensure the adapter implements the port at compile time.
var _ ports.ProductGateway = (*HTTPProductGateway)(nil)

// NewHTTPProductGateway returns a ProductGateway bound to the given base
// URL. client may be nil, in which case a default client with a request
// timeout is used.
func NewHTTPProductGateway(baseURL string, client *http.Client) ports.ProductGateway {
	if client == nil {
		client = defaultClient()
	}
	return &HTTPProductGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// List fetches the full catalog: GET /products/.
func (g *HTTPProductGateway) List(ctx context.Context) ([]entity.Product, error) {
	req, err := newRequest(ctx, http.MethodGet, g.baseURL+"/products/", "", nil)
	if err != nil {
		return nil, err
	}
	var products []entity.Product
	if err := do(g.client, req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create submits a new product: POST /products/.
func (g *HTTPProductGateway) Create(ctx context.Context, in entity.NewProduct) (*entity.Product, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode product: %w", err)
	}
	req, err := newRequest(ctx, http.MethodPost, g.baseURL+"/products/", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	var created entity.Product
	if err := do(g.client, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AttachImage uploads a binary image for an existing product:
// POST /products/{id}/upload-image/ with multipart field "image".
// The response body carries no data the client needs.
func (g *HTTPProductGateway) AttachImage(ctx context.Context, productID, filename string, payload []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/products/%s/upload-image/", g.baseURL, productID)
	req, err := newRequest(ctx, http.MethodPost, url, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return do(g.client, req, nil)
}

// Delete removes a product from the catalog: DELETE /products/{id}.
func (g *HTTPProductGateway) Delete(ctx context.Context, productID string) error {
	url := fmt.Sprintf("%s/products/%s", g.baseURL, productID)
	req, err := newRequest(ctx, http.MethodDelete, url, "", nil)
	if err != nil {
		return err
	}
	return do(g.client, req, nil)
}
