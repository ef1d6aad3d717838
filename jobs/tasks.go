// Package jobs runs background maintenance over the persisted state. Jobs
// read the key-value store directly; the reconciliation path in the API
// process stays synchronous and is never touched from here.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/hibiken/asynq"

	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/store"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLowStockScan scans the catalog for products at or below their
	// reorder threshold.
	TaskTypeLowStockScan = "catalog:low_stock_scan"
	// TaskTypeDocumentIntegrity re-checks the cached document totals against
	// their line items.
	TaskTypeDocumentIntegrity = "documents:integrity"
)

// NewLowStockScanTask constructs the low-stock scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLowStockScan, nil)
}

// NewDocumentIntegrityTask constructs the totals integrity task.
func NewDocumentIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDocumentIntegrity, nil)
}

// LowStockReport is the serialized outcome of a low-stock scan.
type LowStockReport struct {
	Products []string `json:"products"`
}

// RunLowStockScan loads the product collection and logs every product at or
// below its threshold.
func RunLowStockScan(ctx context.Context, st *store.Store, logger *slog.Logger) (LowStockReport, error) {
	products, err := st.LoadProducts(ctx)
	if err != nil {
		return LowStockReport{}, err
	}
	var report LowStockReport
	for _, p := range products {
		if !p.LowStock() {
			continue
		}
		report.Products = append(report.Products, p.ID)
		logger.Warn("product below reorder threshold",
			slog.String("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int("quantity", p.Quantity),
			slog.Int("threshold", p.LowStockThreshold))
	}
	logger.Info("low stock scan executed", slog.Int("flagged", len(report.Products)))
	return report, nil
}

// RunDocumentIntegrity verifies that the cached subtotal/tax/total of every
// stored document still follows from its line items. Drift means something
// wrote a document without revaluing it.
func RunDocumentIntegrity(ctx context.Context, st *store.Store, logger *slog.Logger) error {
	const tolerance = 1e-6
	for _, kind := range []ledger.Kind{ledger.KindSale, ledger.KindPurchase} {
		docs, err := st.LoadDocuments(ctx, kind)
		if err != nil {
			return err
		}
		drifted := 0
		for _, doc := range docs {
			var subtotal float64
			for _, it := range doc.Items {
				subtotal += float64(it.Quantity) * it.UnitPrice
			}
			if math.Abs(subtotal-doc.Subtotal) > tolerance ||
				math.Abs(doc.Subtotal+doc.Tax-doc.Total) > tolerance {
				drifted++
				logger.Warn("document totals drifted",
					slog.String("kind", string(kind)),
					slog.String("id", doc.ID),
					slog.String("number", doc.Number))
			}
		}
		logger.Info("document integrity check executed",
			slog.String("kind", string(kind)),
			slog.Int("documents", len(docs)),
			slog.Int("drifted", drifted))
	}
	return nil
}

func handleLowStockScan(st *store.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		report, err := RunLowStockScan(ctx, st, logger)
		if err != nil {
			return err
		}
		if data, err := json.Marshal(report); err == nil {
			if _, err := t.ResultWriter().Write(data); err != nil {
				logger.Debug("write task result", slog.Any("error", err))
			}
		}
		return nil
	}
}

func handleDocumentIntegrity(st *store.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		return RunDocumentIntegrity(ctx, st, logger)
	}
}
