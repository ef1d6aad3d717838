package party

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockbook/stockbook/internal/platform/httpx"
)

// Handler exposes the customer and supplier directories over HTTP.
type Handler struct {
	logger    *slog.Logger
	customers *CustomerService
	suppliers *SupplierService
	validator *validator.Validate
}

// NewHandler constructs a party handler.
func NewHandler(logger *slog.Logger, customers *CustomerService, suppliers *SupplierService) *Handler {
	return &Handler{logger: logger, customers: customers, suppliers: suppliers, validator: validator.New()}
}

// MountCustomerRoutes registers customer routes on r.
func (h *Handler) MountCustomerRoutes(r chi.Router) {
	r.Get("/", h.listCustomers)
	r.Post("/", h.createCustomer)
	r.Put("/{id}", h.updateCustomer)
	r.Delete("/{id}", h.deleteCustomer)
}

// MountSupplierRoutes registers supplier routes on r.
func (h *Handler) MountSupplierRoutes(r chi.Router) {
	r.Get("/", h.listSuppliers)
	r.Post("/", h.createSupplier)
	r.Put("/{id}", h.updateSupplier)
	r.Delete("/{id}", h.deleteSupplier)
}

type partyRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (partyRequest, bool) {
	var req partyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return partyRequest{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return partyRequest{}, false
	}
	return req, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	h.logger.Error("party operation failed", slog.Any("error", err))
	httpx.RespondError(w, err)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.customers.List(r.Context()))
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	c, err := h.customers.Create(r.Context(), Customer{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	c, err := h.customers.Update(r.Context(), chi.URLParam(r, "id"), Customer{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.suppliers.List(r.Context()))
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	sp, err := h.suppliers.Create(r.Context(), Supplier{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sp)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	sp, err := h.suppliers.Update(r.Context(), chi.URLParam(r, "id"), Supplier{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sp)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.suppliers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.NoContent(w)
}
