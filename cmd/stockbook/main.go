package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockbook/stockbook/internal/app"
	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/party"
	"github.com/stockbook/stockbook/internal/platform/kv"
	"github.com/stockbook/stockbook/internal/reports"
	"github.com/stockbook/stockbook/internal/settings"
	"github.com/stockbook/stockbook/internal/store"
	"github.com/stockbook/stockbook/internal/users"
)

// documentPersister bridges the document services to the store: documents go
// straight through, while the catalog snapshot is taken from the live
// in-memory set at write time.
type documentPersister struct {
	store   *store.Store
	catalog *catalog.Catalog
}

func (p documentPersister) SaveDocuments(ctx context.Context, kind ledger.Kind, docs []documents.Document) error {
	return p.store.SaveDocuments(ctx, kind, docs)
}

func (p documentPersister) SaveCatalog(ctx context.Context) error {
	return p.store.SaveProducts(ctx, p.catalog.All())
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := kv.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	st := store.New(redisClient)
	state, err := st.LoadAll(ctx, cfg.SeedOnEmpty)
	if err != nil {
		logger.Error("load state", slog.Any("error", err))
		os.Exit(1)
	}

	cat := catalog.New()
	cat.ReplaceAll(state.Products)
	invoiceRepo := documents.NewRepository()
	invoiceRepo.ReplaceAll(state.Invoices)
	purchaseRepo := documents.NewRepository()
	purchaseRepo.ReplaceAll(state.Purchases)

	reconciler := ledger.New(cat)
	settingsService := settings.NewService(state.Settings, st)
	docPersist := documentPersister{store: st, catalog: cat}

	invoiceService := documents.NewService(ledger.KindSale, "SALE", invoiceRepo, reconciler, settingsService, docPersist, logger)
	purchaseService := documents.NewService(ledger.KindPurchase, "PO", purchaseRepo, reconciler, settingsService, docPersist, logger)

	productService := catalog.NewService(cat, st)
	customerService := party.NewCustomerService(state.Customers, st)
	supplierService := party.NewSupplierService(state.Suppliers, st)
	userService := users.NewService(state.Users, st)
	reportService := reports.NewService(cat, invoiceRepo, purchaseRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ProductHandler:  catalog.NewHandler(logger, productService),
		InvoiceHandler:  documents.NewHandler(logger, invoiceService),
		PurchaseHandler: documents.NewHandler(logger, purchaseService),
		PartyHandler:    party.NewHandler(logger, customerService, supplierService),
		UserHandler:     users.NewHandler(logger, userService),
		SettingsHandler: settings.NewHandler(logger, settingsService),
		ReportsHandler:  reports.NewHandler(reportService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
