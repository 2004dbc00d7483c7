package invoice

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wecare-vn/invoice-api/internal/common"
	"github.com/wecare-vn/invoice-api/internal/order"
)

// HeaderLister lists stored sale order headers.
type HeaderLister interface {
	ListHeaders(ctx context.Context, limit, offset int) ([]order.Header, int64, error)
}

// TaskEnqueuer submits background recompute jobs.
type TaskEnqueuer interface {
	EnqueueRecompute(ctx context.Context, orderID string) error
}

// Handler exposes the invoice endpoints.
type Handler struct {
	Svc      *Service
	Headers  HeaderLister
	Tasks    TaskEnqueuer
	Validate *validator.Validate
}

// List handles GET /v1/orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.ParsePagination(r, 20, 100)
	rows, total, err := h.Headers.ListHeaders(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       rows,
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}

// Get handles GET /v1/orders/{orderID}/invoice.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		common.JSONError(w, http.StatusBadRequest, "INVALID_ORDER_ID", "order id is required", nil)
		return
	}
	res, err := h.Svc.Build(r.Context(), orderID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	switch res.Status {
	case StatusNoData:
		common.JSONError(w, http.StatusNotFound, "NO_DATA", "order not found", nil)
	case StatusSuperseded:
		common.JSONError(w, http.StatusConflict, "SUPERSEDED", "a newer build took over this order", nil)
	default:
		common.JSON(w, http.StatusOK, map[string]any{
			"status": res.Status,
			"data":   res.View,
		})
	}
}

// PreviewRequest is the pushed-record payload accepted by Preview.
type PreviewRequest struct {
	Order order.HeaderRecord `json:"order" validate:"required"`
	Lines []order.LineRecord `json:"lines" validate:"dive"`
}

// Preview handles POST /v1/invoices/preview. The caller supplies the order
// records directly; nothing is read from or written to the store.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid preview payload", err.Error())
			return
		}
	}
	view := h.Svc.Preview(req.Order, req.Lines)
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Recompute handles POST /v1/orders/{orderID}/invoice/recompute by queueing a
// background rebuild.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		common.JSONError(w, http.StatusBadRequest, "INVALID_ORDER_ID", "order id is required", nil)
		return
	}
	if h.Tasks == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "recompute queue not configured", nil)
		return
	}
	if err := h.Tasks.EnqueueRecompute(r.Context(), orderID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"status": "queued", "order_id": orderID})
}

// Routes mounts the invoice endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{orderID}/invoice", h.Get)
	r.Post("/orders/{orderID}/invoice/recompute", h.Recompute)
	r.Post("/invoices/preview", h.Preview)
}
