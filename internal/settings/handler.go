package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockbook/stockbook/internal/platform/httpx"
)

// Handler exposes the settings object over HTTP.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a settings handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers settings routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type settingsRequest struct {
	CompanyName string  `json:"companyName" validate:"required"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	VATRate     float64 `json:"vatRate" validate:"gte=0,lt=1"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Get(r.Context()))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), AppSettings{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		Phone:       req.Phone,
		VATRate:     req.VATRate,
	})
	if err != nil {
		h.logger.Error("update settings failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
