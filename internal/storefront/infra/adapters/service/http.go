package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/fault"
)

const headerXRequestID = "X-Request-Id"

// defaultClient is used when a gateway is constructed without an explicit
// *http.Client. The timeout bounds the whole exchange; workflows hold no
// other deadline of their own.
func defaultClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// newRequest builds a request that carries the chi request ID (when the
// context has one) to the backend, so one user action can be followed
// across both services in the logs.
func newRequest(ctx context.Context, method, url, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(headerXRequestID, reqID)
	}
	return req, nil
}

// do executes exactly one attempt and maps failures onto the fault
// taxonomy: a transport error becomes a Network fault, a non-2xx response
// an HTTPStatus fault with the body's "detail" field as the message.
// out may be nil for operations whose response body is irrelevant.
func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fault.FromNetwork(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.FromNetwork(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fault.FromResponse(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
