package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the UI event adapter. The request ID assigned here is
// what the gateways forward to the backends as X-Request-Id.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)

	r.Route("/ui", func(r chi.Router) {
		r.Get("/state", handler.State)
		r.Get("/worklog", handler.Worklog)

		r.Post("/catalog/refresh", handler.RefreshCatalog)
		r.Post("/orders/refresh", handler.RefreshOrders)

		r.Post("/products", handler.CreateProduct)
		r.Post("/products/{id}/image", handler.UploadImage)
		r.Delete("/products/{id}", handler.DeleteProduct)

		r.Post("/cart", handler.AddToCart)
		r.Post("/orders", handler.PlaceOrder)
	})

	return r
}
