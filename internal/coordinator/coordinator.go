// Package coordinator implements the client-side state coordinator: the
// cart, the product cache and the refresh-after-mutation workflows that
// keep the rendered views in sync with the Product and Order services.
//
// One Coordinator corresponds to one user session. Workflows are
// independent and may run concurrently: a second click before the first
// request settles starts a second workflow, with no de-duplication. The
// original single-threaded client relied on its event loop to serialize
// state mutations; here a mutex does that, and per-resource request tokens
// discard responses that arrive after a later-issued request has already
// been applied.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/jcmexdev/storefront-aggregator/internal/coordinator/worklog"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/fault"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/ports"
)

var tracer = otel.Tracer("storefront/coordinator")

const (
	catalogLoadingMessage = "Loading products..."
	catalogErrorMessage   = "Could not load products. Please check the Product Service."
	ordersLoadingMessage  = "Loading orders..."
	ordersErrorMessage    = "Could not load orders. Check Order Service."
)

// requestSeq hands out monotonically increasing tokens for one remote
// resource and remembers the newest token whose response has been applied.
// A response whose token is older than the last applied one is stale and
// must be discarded, preserving last-issued-wins ordering.
type requestSeq struct {
	issued  uint64
	applied uint64
}

func (s *requestSeq) next() uint64 {
	s.issued++
	return s.issued
}

// tryApply reports whether the response for token may still be applied,
// recording the token when it may.
func (s *requestSeq) tryApply(token uint64) bool {
	if token < s.applied {
		return false
	}
	s.applied = token
	return true
}

// Coordinator orchestrates the user-triggered workflows. All mutable state
// (cart, cache, request tokens) is owned by the instance, so independent
// Coordinators are fully isolated; tests construct as many as they like.
type Coordinator struct {
	products ports.ProductGateway
	orders   ports.OrderGateway
	shell    ports.Shell
	log      worklog.Repository // nil-safe: transitions are not persisted when nil

	mu         sync.Mutex
	cart       Cart
	cache      *catalogCache
	catalogSeq requestSeq
	ordersSeq  requestSeq
}

// New wires a Coordinator to its two gateways and the presentation shell.
// log may be nil to run without the workflow audit trail.
func New(products ports.ProductGateway, orders ports.OrderGateway, shell ports.Shell, log worklog.Repository) *Coordinator {
	return &Coordinator{
		products: products,
		orders:   orders,
		shell:    shell,
		log:      log,
		cache:    newCatalogCache(),
	}
}

// RefreshCatalog runs the catalog refresh workflow: loading placeholder,
// one list attempt, then wholesale cache replacement and render on success,
// or an error placeholder and a failure notification. Terminal either way,
// idempotent, and safe to re-invoke at any time.
//
// Product list renders, placeholders included, happen while holding the
// mutex, so view updates apply in token order and a stale workflow never
// paints over a newer one's output.
func (c *Coordinator) RefreshCatalog(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "catalog_refresh")
	defer span.End()
	wfID := c.begin(ctx, "catalog_refresh")

	c.mu.Lock()
	token := c.catalogSeq.next()
	c.shell.RenderProductListPlaceholder(catalogLoadingMessage)
	c.mu.Unlock()

	products, err := c.products.List(ctx)

	c.mu.Lock()
	applied := c.catalogSeq.tryApply(token)
	if applied {
		if err == nil {
			c.cache.Replace(products)
			c.shell.RenderProductList(products)
		} else {
			c.shell.RenderProductListPlaceholder(catalogErrorMessage)
		}
	}
	c.mu.Unlock()

	if !applied {
		slog.InfoContext(ctx, "stale catalog response discarded", "workflow_id", wfID)
		c.transition(ctx, wfID, "catalog_refresh", worklog.StatusDiscarded, "")
		return nil
	}
	if err != nil {
		c.shell.Notify(fmt.Sprintf("Failed to load products: %v", err), ports.SeverityError)
		c.fail(ctx, wfID, "catalog_refresh", err)
		return err
	}

	c.complete(ctx, wfID, "catalog_refresh", fmt.Sprintf("%d products", len(products)))
	return nil
}

// RefreshOrders is the order-list refresh workflow, symmetric to
// RefreshCatalog against the Order gateway.
func (c *Coordinator) RefreshOrders(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "orders_refresh")
	defer span.End()
	wfID := c.begin(ctx, "orders_refresh")

	c.mu.Lock()
	token := c.ordersSeq.next()
	c.shell.RenderOrderListPlaceholder(ordersLoadingMessage)
	c.mu.Unlock()

	orders, err := c.orders.List(ctx)

	c.mu.Lock()
	applied := c.ordersSeq.tryApply(token)
	if applied {
		if err == nil {
			c.shell.RenderOrderList(orders)
		} else {
			c.shell.RenderOrderListPlaceholder(ordersErrorMessage)
		}
	}
	c.mu.Unlock()

	if !applied {
		slog.InfoContext(ctx, "stale order list response discarded", "workflow_id", wfID)
		c.transition(ctx, wfID, "orders_refresh", worklog.StatusDiscarded, "")
		return nil
	}
	if err != nil {
		c.shell.Notify(fmt.Sprintf("Failed to load orders: %v", err), ports.SeverityError)
		c.fail(ctx, wfID, "orders_refresh", err)
		return err
	}

	c.complete(ctx, wfID, "orders_refresh", fmt.Sprintf("%d orders", len(orders)))
	return nil
}

// CreateProduct submits a new catalog record. On success it resets the
// input surface and re-runs the catalog refresh, so server-assigned fields
// are picked up from the source of truth rather than guessed. On failure
// the input surface is left untouched for correction, and the
// server-supplied message is shown as-is.
func (c *Coordinator) CreateProduct(ctx context.Context, in entity.NewProduct) error {
	ctx, span := tracer.Start(ctx, "create_product")
	defer span.End()
	wfID := c.begin(ctx, "create_product")

	created, err := c.products.Create(ctx, in)
	if err != nil {
		c.shell.Notify(err.Error(), ports.SeverityError)
		c.fail(ctx, wfID, "create_product", err)
		return err
	}

	c.shell.Notify("Product added successfully!", ports.SeveritySuccess)
	c.shell.ResetProductForm()
	c.complete(ctx, wfID, "create_product", fmt.Sprintf("product %s created", created.ID))

	// Refresh failures are reported by the refresh workflow itself; the
	// create already succeeded.
	_ = c.RefreshCatalog(ctx)
	return nil
}

// AttachImage uploads an image for a product. An empty payload is a local
// validation failure and issues no network call. On success the catalog is
// re-fetched so the displayed record reflects the new image reference; on
// failure the cache is left stale and only a notification is emitted.
func (c *Coordinator) AttachImage(ctx context.Context, productID, filename string, payload []byte) error {
	ctx, span := tracer.Start(ctx, "attach_image")
	defer span.End()
	wfID := c.begin(ctx, "attach_image")

	if len(payload) == 0 {
		f := fault.FromValidation("Select an image first!")
		c.shell.Notify(f.Message, ports.SeverityError)
		c.fail(ctx, wfID, "attach_image", f)
		return f
	}

	if err := c.products.AttachImage(ctx, productID, filename, payload); err != nil {
		c.shell.Notify(fmt.Sprintf("Image upload failed: %v", err), ports.SeverityError)
		c.fail(ctx, wfID, "attach_image", err)
		return err
	}

	c.shell.Notify("Image uploaded successfully!", ports.SeveritySuccess)
	c.complete(ctx, wfID, "attach_image", fmt.Sprintf("image attached to product %s", productID))

	_ = c.RefreshCatalog(ctx)
	return nil
}

// DeleteProduct removes a product from the catalog and re-fetches on
// success. A deleted product is not pruned from existing cart line items;
// the Order service decides what to do with such orders.
func (c *Coordinator) DeleteProduct(ctx context.Context, productID string) error {
	ctx, span := tracer.Start(ctx, "delete_product")
	defer span.End()
	wfID := c.begin(ctx, "delete_product")

	if err := c.products.Delete(ctx, productID); err != nil {
		c.shell.Notify(fmt.Sprintf("Failed to delete product: %v", err), ports.SeverityError)
		c.fail(ctx, wfID, "delete_product", err)
		return err
	}

	c.shell.Notify("Product deleted.", ports.SeveritySuccess)
	c.complete(ctx, wfID, "delete_product", fmt.Sprintf("product %s deleted", productID))

	_ = c.RefreshCatalog(ctx)
	return nil
}

// AddToCart is a pure local mutation: it updates the cart, re-renders it
// and notifies. It never touches the network and never fails.
func (c *Coordinator) AddToCart(ctx context.Context, productID, name string, unitPrice float64) {
	ctx, span := tracer.Start(ctx, "add_to_cart")
	defer span.End()
	wfID := c.begin(ctx, "add_to_cart")

	c.mu.Lock()
	c.cart.AddItem(productID, name, unitPrice)
	items := c.cart.Items()
	total := c.cart.Total()
	c.mu.Unlock()

	c.shell.RenderCart(items, total)
	c.shell.Notify(fmt.Sprintf("Added %q to cart!", name), ports.SeverityInfo)
	c.complete(ctx, wfID, "add_to_cart", fmt.Sprintf("product %s in cart", productID))
}

// PlaceOrder serializes the cart and submits it to the Order service. An
// empty cart is a local validation failure with no network call. On
// success the cart is cleared unconditionally, the (now empty) cart is
// re-rendered and the order list is refreshed. On failure the cart is left
// untouched so the user can retry without re-adding items. The cart is
// never cleared before the call resolves.
func (c *Coordinator) PlaceOrder(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "place_order")
	defer span.End()
	wfID := c.begin(ctx, "place_order")

	c.mu.Lock()
	items := c.cart.OrderItems()
	c.mu.Unlock()

	if len(items) == 0 {
		f := fault.FromValidation("Cart is empty!")
		c.shell.Notify(f.Message, ports.SeverityError)
		c.fail(ctx, wfID, "place_order", f)
		return f
	}

	order, err := c.orders.Create(ctx, items)
	if err != nil {
		c.shell.Notify(fmt.Sprintf("Order placement failed: %v", err), ports.SeverityError)
		c.fail(ctx, wfID, "place_order", err)
		return err
	}

	c.mu.Lock()
	c.cart.Clear()
	cartItems := c.cart.Items()
	total := c.cart.Total()
	c.mu.Unlock()

	c.shell.RenderCart(cartItems, total)
	c.shell.Notify("Order placed successfully!", ports.SeveritySuccess)
	c.complete(ctx, wfID, "place_order", fmt.Sprintf("order %s placed", order.ID))

	_ = c.RefreshOrders(ctx)
	return nil
}

// CartView returns the current line items and total for display.
func (c *Coordinator) CartView() ([]entity.CartItem, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Items(), c.cart.Total()
}

// CachedProduct returns the record for id from the last successful catalog
// fetch. There is no freshness guarantee beyond that.
func (c *Coordinator) CachedProduct(id string) (entity.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(id)
}

// CachedProductCount returns the size of the current catalog snapshot.
func (c *Coordinator) CachedProductCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// begin mints a workflow ID and records the STARTED transition.
func (c *Coordinator) begin(ctx context.Context, name string) string {
	wfID := uuid.NewString()
	slog.InfoContext(ctx, "workflow started", "workflow", name, "workflow_id", wfID)
	c.transition(ctx, wfID, name, worklog.StatusStarted, "")
	return wfID
}

func (c *Coordinator) complete(ctx context.Context, wfID, name, detail string) {
	slog.InfoContext(ctx, "workflow completed", "workflow", name, "workflow_id", wfID, "detail", detail)
	c.transition(ctx, wfID, name, worklog.StatusCompleted, detail)
}

func (c *Coordinator) fail(ctx context.Context, wfID, name string, err error) {
	slog.WarnContext(ctx, "workflow failed",
		"workflow", name,
		"workflow_id", wfID,
		"kind", string(fault.KindOf(err)),
		"error", err,
	)
	c.transition(ctx, wfID, name, worklog.StatusFailed, err.Error())
}

// transition persists one lifecycle row. The log is best-effort: a failed
// save is reported but never fails the workflow.
func (c *Coordinator) transition(ctx context.Context, wfID, name string, status worklog.Status, detail string) {
	if c.log == nil {
		return
	}
	entry := worklog.NewEntry(ctx, wfID, name, status, detail)
	if err := c.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "work log save failed", "workflow", name, "error", err)
	}
}
