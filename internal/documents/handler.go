package documents

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/platform/httpx"
)

// Handler exposes one document collection over HTTP. The same handler type
// serves /api/invoices and /api/purchases, each backed by its own service.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a document handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers the document routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/next-number", h.nextNumber)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type lineItemRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type documentRequest struct {
	Number    string            `json:"documentNumber"`
	PartyID   string            `json:"partyId" validate:"required"`
	PartyName string            `json:"partyName"`
	Date      string            `json:"date" validate:"required"`
	Items     []lineItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req documentRequest) toDocument(id string) Document {
	items := make([]LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, LineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return Document{
		ID:        id,
		Number:    req.Number,
		PartyID:   req.PartyID,
		PartyName: req.PartyName,
		Date:      req.Date,
		Items:     items,
	}
}

// stockProblem extends the RFC7807 document with the shortfall fields the
// client needs to present the error.
type stockProblem struct {
	httpx.ProblemDetail
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	docs := h.service.List(r.Context(), r.URL.Query().Get("q"))
	httpx.JSON(w, http.StatusOK, docs)
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"documentNumber": h.service.NextNumber(r.Context())})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "document does not exist")
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Save(r.Context(), req.toDocument(""), nil)
	if err != nil {
		h.respondSaveError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prior, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "document does not exist")
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	doc := req.toDocument(id)
	if doc.Number == "" {
		doc.Number = prior.Number
	}
	saved, err := h.service.Save(r.Context(), doc, prior.Items)
	if err != nil {
		h.respondSaveError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "document does not exist")
		return
	}
	if err != nil {
		h.logger.Error("delete document failed", slog.String("kind", string(h.service.Kind())), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (documentRequest, bool) {
	var req documentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return documentRequest{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return documentRequest{}, false
	}
	return req, true
}

func (h *Handler) respondSaveError(w http.ResponseWriter, err error) {
	var stockErr *ledger.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		httpx.JSON(w, http.StatusConflict, stockProblem{
			ProblemDetail: httpx.ProblemDetail{
				Title:  "Insufficient Stock",
				Status: http.StatusConflict,
				Detail: stockErr.Error(),
			},
			ProductID:   stockErr.ProductID,
			ProductName: stockErr.ProductName,
			Available:   stockErr.Available,
			Requested:   stockErr.Requested,
		})
	case errors.Is(err, ErrNoItems), errors.Is(err, ErrNoParty):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error("save document failed", slog.String("kind", string(h.service.Kind())), slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
