package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jcmexdev/storefront-aggregator/internal/coordinator"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/infra/adapters/service"
)

// productBackend is a minimal in-memory stand-in for the Product service.
type productBackend struct {
	mu       sync.Mutex
	products []map[string]any
	nextID   int
}

func (b *productBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(b.products)
	})
	mux.HandleFunc("POST /products/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["name"] == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":"Name required"}`))
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		in["product_id"] = fmt.Sprintf("P%d", b.nextID)
		b.products = append(b.products, in)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})
	return mux
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	backend := &productBackend{}
	productSrv := httptest.NewServer(backend.handler())
	t.Cleanup(productSrv.Close)

	orderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"order_id":"O1","total_amount":4,"status":"pending"}`))
		}
	}))
	t.Cleanup(orderSrv.Close)

	shell := NewStateShell(time.Minute)
	coord := coordinator.New(
		service.NewHTTPProductGateway(productSrv.URL, nil),
		service.NewHTTPOrderGateway(orderSrv.URL, nil),
		shell,
		nil,
	)
	handler := NewHandler(coord, shell, nil)
	appSrv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(appSrv.Close)

	return appSrv
}

func postJSON(t *testing.T, url string, body string) StateResponse {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}
	var state StateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func TestCreateProductFlow(t *testing.T) {
	appSrv := newTestServer(t)

	state := postJSON(t, appSrv.URL+"/ui/products",
		`{"name":"Widget","description":"","price":2.5,"stock_quantity":3}`)

	if state.Notification == nil || state.Notification.Message != "Product added successfully!" {
		t.Fatalf("unexpected notification: %+v", state.Notification)
	}
	if state.FormVersion != 1 {
		t.Fatalf("expected the form to reset once, got version %d", state.FormVersion)
	}
	if len(state.ProductList.Products) != 1 || state.ProductList.Products[0].Name != "Widget" {
		t.Fatalf("expected the refreshed catalog to show the product: %+v", state.ProductList)
	}
}

func TestCreateProductFailureKeepsForm(t *testing.T) {
	appSrv := newTestServer(t)

	state := postJSON(t, appSrv.URL+"/ui/products",
		`{"name":"","price":1,"stock_quantity":1}`)

	if state.Notification == nil || state.Notification.Message != "Name required" {
		t.Fatalf("expected the backend detail, got %+v", state.Notification)
	}
	if state.FormVersion != 0 {
		t.Fatalf("form must not reset on failure, got version %d", state.FormVersion)
	}
}

func TestPlaceOrderFromCart(t *testing.T) {
	appSrv := newTestServer(t)

	state := postJSON(t, appSrv.URL+"/ui/cart",
		`{"product_id":"P1","name":"Widget","price":2}`)
	if len(state.Cart.Items) != 1 || state.Cart.Total != 2 {
		t.Fatalf("unexpected cart: %+v", state.Cart)
	}

	state = postJSON(t, appSrv.URL+"/ui/cart",
		`{"product_id":"P1","name":"Widget","price":2}`)
	if state.Cart.Items[0].Quantity != 2 || state.Cart.Total != 4 {
		t.Fatalf("expected aggregation, got %+v", state.Cart)
	}

	state = postJSON(t, appSrv.URL+"/ui/orders", "")
	if len(state.Cart.Items) != 0 {
		t.Fatalf("expected the cart to clear after ordering, got %+v", state.Cart)
	}
	if state.Notification == nil || state.Notification.Message != "Order placed successfully!" {
		t.Fatalf("unexpected notification: %+v", state.Notification)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	appSrv := newTestServer(t)

	state := postJSON(t, appSrv.URL+"/ui/orders", "")
	if state.Notification == nil || !strings.Contains(state.Notification.Message, "Cart is empty!") {
		t.Fatalf("expected the empty-cart notification, got %+v", state.Notification)
	}
}

func TestUploadWithoutFileIsRejectedLocally(t *testing.T) {
	appSrv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.Close()

	req, err := http.NewRequest(http.MethodPost, appSrv.URL+"/ui/products/P1/image", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	var state StateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Notification == nil || !strings.Contains(state.Notification.Message, "Select an image first!") {
		t.Fatalf("expected the local validation message, got %+v", state.Notification)
	}
}

func TestUploadWithMalformedBodyIsBadRequest(t *testing.T) {
	appSrv := newTestServer(t)

	resp, err := http.Post(
		appSrv.URL+"/ui/products/P1/image",
		"multipart/form-data; boundary=xyz",
		strings.NewReader("this is not a multipart body"),
	)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed multipart body, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error != "invalid_multipart" {
		t.Fatalf("unexpected error code: %q", errResp.Error)
	}
}

func TestWorklogDisabledReturns404(t *testing.T) {
	appSrv := newTestServer(t)

	resp, err := http.Get(appSrv.URL + "/ui/worklog")
	if err != nil {
		t.Fatalf("GET worklog: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 with the worklog disabled, got %d", resp.StatusCode)
	}
}

func TestStateEndpoint(t *testing.T) {
	appSrv := newTestServer(t)

	resp, err := http.Get(appSrv.URL + "/ui/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var state StateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Notification != nil {
		t.Fatalf("expected no notification on a fresh shell, got %+v", state.Notification)
	}
}
