package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/party"
	"github.com/stockbook/stockbook/internal/reports"
	"github.com/stockbook/stockbook/internal/settings"
	"github.com/stockbook/stockbook/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ProductHandler  *catalog.Handler
	InvoiceHandler  *documents.Handler
	PurchaseHandler *documents.Handler
	PartyHandler    *party.Handler
	UserHandler     *users.Handler
	SettingsHandler *settings.Handler
	ReportsHandler  *reports.Handler
}

// NewRouter constructs the chi.Router with Stockbook defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.UserHandler.MountLogin(r)
		r.Route("/products", params.ProductHandler.MountRoutes)
		r.Route("/invoices", params.InvoiceHandler.MountRoutes)
		r.Route("/purchases", params.PurchaseHandler.MountRoutes)
		r.Route("/customers", params.PartyHandler.MountCustomerRoutes)
		r.Route("/suppliers", params.PartyHandler.MountSupplierRoutes)
		r.Route("/users", params.UserHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
	})

	return r
}
