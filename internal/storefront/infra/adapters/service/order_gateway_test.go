package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/fault"
)

func TestOrderGatewayList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/orders/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"order_id":"O1","user_id":"U1","total_amount":12.5,"status":"pending",
			 "items":[{"product_id":"P1","quantity":2}]}
		]`))
	}))
	defer srv.Close()

	g := NewHTTPOrderGateway(srv.URL, nil)
	orders, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].ID != "O1" || orders[0].TotalAmount != 12.5 || len(orders[0].Items) != 1 {
		t.Fatalf("unexpected order: %+v", orders[0])
	}
}

func TestOrderGatewayCreateOmitsPrices(t *testing.T) {
	var rawBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		rawBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order_id":"O2","total_amount":5,"status":"pending"}`))
	}))
	defer srv.Close()

	g := NewHTTPOrderGateway(srv.URL, nil)
	created, err := g.Create(context.Background(), []entity.OrderItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "O2" {
		t.Fatalf("unexpected created order: %+v", created)
	}

	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(rawBody, &body); err != nil {
		t.Fatalf("decode submitted body: %v", err)
	}
	if len(body.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(body.Items))
	}
	// The server owns pricing: the payload must carry nothing but the
	// product reference and the quantity.
	for _, item := range body.Items {
		if len(item) != 2 {
			t.Fatalf("unexpected item keys: %+v", item)
		}
	}
	if strings.Contains(string(rawBody), "price") {
		t.Fatalf("order payload leaked prices: %s", rawBody)
	}
}

func TestOrderGatewayCreateSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Insufficient stock for product P1"}`))
	}))
	defer srv.Close()

	g := NewHTTPOrderGateway(srv.URL, nil)
	_, err := g.Create(context.Background(), []entity.OrderItem{{ProductID: "P1", Quantity: 99}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := fault.KindOf(err); kind != fault.HTTPStatus {
		t.Fatalf("expected HTTPStatus fault, got %q", kind)
	}
	if err.Error() != "Insufficient stock for product P1" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
