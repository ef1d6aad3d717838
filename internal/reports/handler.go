package reports

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockbook/stockbook/internal/platform/httpx"
)

// Handler exposes the report views over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a reports handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MountRoutes registers report routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/low-stock", h.lowStock)
	r.Get("/top-products", h.topProducts)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Summary(r.Context()))
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.LowStock(r.Context()))
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	httpx.JSON(w, http.StatusOK, h.service.TopProducts(r.Context(), limit))
}
