package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockbook/stockbook/internal/platform/httpx"
)

// Handler exposes product management over HTTP. Quantity changes made here are
// manual corrections; document-driven changes go through the reconciler.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a product handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers product routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type productRequest struct {
	Name              string  `json:"name" validate:"required"`
	SKU               string  `json:"sku"`
	Barcode           string  `json:"barcode"`
	Category          string  `json:"category"`
	PurchasePrice     float64 `json:"purchasePrice" validate:"gte=0"`
	SalePrice         float64 `json:"salePrice" validate:"gte=0"`
	Quantity          int     `json:"quantity" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
}

func (req productRequest) toProduct() Product {
	return Product{
		Name:              req.Name,
		SKU:               req.SKU,
		Barcode:           req.Barcode,
		Category:          req.Category,
		PurchasePrice:     req.PurchasePrice,
		SalePrice:         req.SalePrice,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product does not exist")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, err := h.service.Create(r.Context(), req.toProduct())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toProduct())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (productRequest, bool) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return productRequest{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return productRequest{}, false
	}
	return req, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateID):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		h.logger.Error("product operation failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
