package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/storefront-aggregator/internal/coordinator"
	"github.com/jcmexdev/storefront-aggregator/internal/coordinator/worklog"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
)

// maxImageBytes bounds an uploaded image; anything larger is rejected
// before the workflow runs.
const maxImageBytes = 32 << 20

// WorklogReader is the query side of the workflow audit trail.
type WorklogReader interface {
	Recent(ctx context.Context, limit int) ([]worklog.Entry, error)
}

// Handler translates UI events into coordinator workflow calls. It is the
// adapter layer between the presentation shell and the core.
// Each endpoint runs its workflow to completion and responds with the
// resulting state snapshot, so the caller never has to poll separately to
// see the outcome.
type Handler struct {
	coord *coordinator.Coordinator
	shell *StateShell
	logs  WorklogReader // nil-safe: the worklog endpoint 404s when nil
}

// NewHandler wires the adapter to the coordinator and its shell.
// logs may be nil when the worklog is disabled.
func NewHandler(coord *coordinator.Coordinator, shell *StateShell, logs WorklogReader) *Handler {
	return &Handler{coord: coord, shell: shell, logs: logs}
}

// State returns the current rendered state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// RefreshCatalog re-runs the catalog refresh workflow. Failures surface in
// the snapshot as a placeholder plus notification, not as an HTTP error:
// the workflow completed its contract either way.
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	_ = h.coord.RefreshCatalog(r.Context())
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// RefreshOrders re-runs the order list refresh workflow.
func (h *Handler) RefreshOrders(w http.ResponseWriter, r *http.Request) {
	_ = h.coord.RefreshOrders(r.Context())
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// CreateProduct submits the create-product form.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	_ = h.coord.CreateProduct(r.Context(), entity.NewProduct{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// UploadImage forwards the selected file to the attach-image workflow.
// A malformed multipart body is a 400; a well-formed form without a file
// is passed through as an empty payload so the workflow's local validation
// runs, with no network call made in that case.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product_id_required", "")
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_multipart", err.Error())
		return
	}

	var payload []byte
	var filename string
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable_image", err.Error())
			return
		}
		payload = data
		filename = header.Filename
	case errors.Is(err, http.ErrMissingFile):
		// no file selected: handled by the workflow
	default:
		writeError(w, http.StatusBadRequest, "invalid_multipart", err.Error())
		return
	}

	_ = h.coord.AttachImage(r.Context(), productID, filename, payload)
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// DeleteProduct removes a catalog record.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product_id_required", "")
		return
	}

	_ = h.coord.DeleteProduct(r.Context(), productID)
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// AddToCart records a selection. Purely local; never touches a backend.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id_required", "")
		return
	}

	h.coord.AddToCart(r.Context(), req.ProductID, req.Name, req.Price)
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// PlaceOrder submits the cart as an order.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	_ = h.coord.PlaceOrder(r.Context())
	writeJSON(w, http.StatusOK, h.shell.Snapshot())
}

// Worklog lists the most recent workflow audit entries.
func (h *Handler) Worklog(w http.ResponseWriter, r *http.Request) {
	if h.logs == nil {
		writeError(w, http.StatusNotFound, "worklog_disabled", "")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "")
			return
		}
		limit = n
	}

	entries, err := h.logs.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "worklog_query_failed", err.Error())
		return
	}

	out := make([]WorklogEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = WorklogEntryResponse{
			WorkflowID: entry.WorkflowID,
			Name:       entry.Name,
			Status:     string(entry.Status),
			Detail:     entry.Detail,
			TraceID:    entry.TraceID,
			SpanID:     entry.SpanID,
			UpdatedAt:  entry.UpdatedAt.Format(time.RFC3339Nano),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Healthz reports process liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}
