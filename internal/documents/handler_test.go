package documents

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newHandlerFixture(t *testing.T) (*Handler, fixture) {
	t.Helper()
	f := newSaleFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, f.service), f
}

func mountHandler(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/invoices", h.MountRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreate(t *testing.T) {
	h, f := newHandlerFixture(t)
	router := mountHandler(h)

	rec := postJSON(t, router, "/invoices", map[string]any{
		"partyId":   "cust1",
		"partyName": "Nile Traders",
		"date":      "2026-09-01",
		"items": []map[string]any{
			{"productId": "p1", "productName": "Rebar", "quantity": 10, "unitPrice": 27000},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "SALE-001", doc.Number)
	require.InDelta(t, 307800.0, doc.Total, 1e-9)
	require.Equal(t, 70, f.quantity(t, "p1"))
}

func TestHandlerCreateValidation(t *testing.T) {
	h, _ := newHandlerFixture(t)
	router := mountHandler(h)

	// No items.
	rec := postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01", "items": []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero quantity line.
	rec = postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 0, "unitPrice": 10}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed body.
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerInsufficientStockConflict(t *testing.T) {
	h, f := newHandlerFixture(t)
	router := mountHandler(h)

	rec := postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 10, "unitPrice": 27000}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 75, "unitPrice": 27000}},
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var problem struct {
		Title       string `json:"title"`
		Status      int    `json:"status"`
		ProductID   string `json:"productId"`
		ProductName string `json:"productName"`
		Available   int    `json:"available"`
		Requested   int    `json:"requested"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "Insufficient Stock", problem.Title)
	require.Equal(t, http.StatusConflict, problem.Status)
	require.Equal(t, "p1", problem.ProductID)
	require.Equal(t, "Rebar", problem.ProductName)
	require.Equal(t, 70, problem.Available)
	require.Equal(t, 75, problem.Requested)
	require.Equal(t, 70, f.quantity(t, "p1"))
}

func TestHandlerUpdateUsesPriorItems(t *testing.T) {
	h, f := newHandlerFixture(t)
	router := mountHandler(h)

	rec := postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 10, "unitPrice": 27000}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	payload, err := json.Marshal(map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 5, "unitPrice": 27000}},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/invoices/"+doc.ID, bytes.NewReader(payload))
	updateRec := httptest.NewRecorder()
	router.ServeHTTP(updateRec, req)
	require.Equal(t, http.StatusOK, updateRec.Code)

	var updated Document
	require.NoError(t, json.Unmarshal(updateRec.Body.Bytes(), &updated))
	require.Equal(t, doc.Number, updated.Number, "edit keeps the document number")
	require.Equal(t, 75, f.quantity(t, "p1"))
}

func TestHandlerDelete(t *testing.T) {
	h, f := newHandlerFixture(t)
	router := mountHandler(h)

	rec := postJSON(t, router, "/invoices", map[string]any{
		"partyId": "cust1", "date": "2026-09-01",
		"items": []map[string]any{{"productId": "p1", "quantity": 30, "unitPrice": 27000}},
	})
	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, 50, f.quantity(t, "p1"))

	req := httptest.NewRequest(http.MethodDelete, "/invoices/"+doc.ID, nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, req)
	require.Equal(t, http.StatusNoContent, delRec.Code)
	require.Equal(t, 80, f.quantity(t, "p1"))

	req = httptest.NewRequest(http.MethodDelete, "/invoices/"+doc.ID, nil)
	delRec = httptest.NewRecorder()
	router.ServeHTTP(delRec, req)
	require.Equal(t, http.StatusNotFound, delRec.Code)
}

func TestHandlerNextNumber(t *testing.T) {
	h, _ := newHandlerFixture(t)
	router := mountHandler(h)

	req := httptest.NewRequest(http.MethodGet, "/invoices/next-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "SALE-001", body["documentNumber"])
}

func TestHandlerGetNotFound(t *testing.T) {
	h, _ := newHandlerFixture(t)
	router := mountHandler(h)

	req := httptest.NewRequest(http.MethodGet, "/invoices/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
