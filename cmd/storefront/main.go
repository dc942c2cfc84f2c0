package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jcmexdev/storefront-aggregator/internal/coordinator"
	"github.com/jcmexdev/storefront-aggregator/internal/coordinator/worklog"
	worklogsqlite "github.com/jcmexdev/storefront-aggregator/internal/coordinator/worklog/sqlite"
	"github.com/jcmexdev/storefront-aggregator/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/infra/adapters/service"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/infra/httpx"
)

func main() {
	httpAddr := getEnv("HTTP_ADDR", ":8080")
	productURL := getEnv("PRODUCT_SERVICE_URL", "http://localhost:8000")
	orderURL := getEnv("ORDER_SERVICE_URL", "http://localhost:8001")
	worklogPath := getEnv("WORKLOG_PATH", "./worklog.db")

	telemetry.InitLogger()

	ctx := context.Background()
	shutdown, err := telemetry.SetupTracer(ctx, "storefront-aggregator")
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	var logRepo worklog.Repository
	var logReader httpx.WorklogReader
	repo, err := worklogsqlite.Open(worklogPath)
	if err != nil {
		slog.Warn("worklog disabled", "path", worklogPath, "error", err)
	} else {
		defer repo.Close()
		logRepo = repo
		logReader = repo
	}

	products := service.NewHTTPProductGateway(productURL, nil)
	orders := service.NewHTTPOrderGateway(orderURL, nil)
	shell := httpx.NewStateShell(httpx.DefaultNotificationTTL)
	coord := coordinator.New(products, orders, shell, logRepo)

	// Initial fetch, same as the page load in a browser.
	go func() { _ = coord.RefreshCatalog(ctx) }()
	go func() { _ = coord.RefreshOrders(ctx) }()

	handler := httpx.NewHandler(coord, shell, logReader)
	router := httpx.NewRouter(handler)

	slog.Info("storefront aggregator running",
		"addr", httpAddr,
		"product_service", productURL,
		"order_service", orderURL,
	)
	if err := http.ListenAndServe(httpAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
