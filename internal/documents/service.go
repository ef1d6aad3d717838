package documents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stockbook/stockbook/internal/ledger"
)

// Persister writes a document collection to the backing key-value store.
type Persister interface {
	SaveDocuments(ctx context.Context, kind ledger.Kind, docs []Document) error
	SaveCatalog(ctx context.Context) error
}

// RateSource supplies the current VAT rate at save time. Stored documents keep
// the totals they were committed with even if the rate changes later.
type RateSource interface {
	VATRate() float64
}

// Service is the commit boundary for one document kind: it recomputes totals,
// reconciles stock and only then touches the repository. The service for sale
// documents and the one for purchase documents share a single reconciler, so
// all stock writes stay serialized.
type Service struct {
	kind       ledger.Kind
	prefix     string
	repo       *Repository
	reconciler *ledger.Reconciler
	rates      RateSource
	persist    Persister
	logger     *slog.Logger
}

// NewService wires a document service for the given kind.
func NewService(kind ledger.Kind, prefix string, repo *Repository, reconciler *ledger.Reconciler, rates RateSource, persist Persister, logger *slog.Logger) *Service {
	return &Service{
		kind:       kind,
		prefix:     prefix,
		repo:       repo,
		reconciler: reconciler,
		rates:      rates,
		persist:    persist,
		logger:     logger,
	}
}

// Kind reports which document kind this service commits.
func (s *Service) Kind() ledger.Kind { return s.kind }

// List returns documents matching the search term, or all of them.
func (s *Service) List(ctx context.Context, term string) []Document {
	return s.repo.Search(term)
}

// Get returns one document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	doc, ok := s.repo.Get(id)
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// NextNumber derives the next document number from the current repository.
func (s *Service) NextNumber(ctx context.Context) string {
	return NextNumber(s.repo.List(), s.prefix)
}

// Save commits a new document or an edit. priorItems must be empty for a new
// document and the pre-edit item snapshot for an edit; the reconciler undoes
// the prior effect before applying the new one. On an insufficient-stock
// failure nothing is mutated; the caller surfaces the shortfall.
func (s *Service) Save(ctx context.Context, doc Document, priorItems []LineItem) (Document, error) {
	if len(doc.Items) == 0 {
		return Document{}, ErrNoItems
	}
	if strings.TrimSpace(doc.PartyID) == "" {
		return Document{}, ErrNoParty
	}

	doc.Kind = s.kind
	editing := doc.ID != ""
	if !editing {
		doc.ID = uuid.NewString()
	}
	if doc.Number == "" {
		doc.Number = s.NextNumber(ctx)
	}
	RecomputeTotals(&doc, s.rates.VATRate())

	if err := s.reconciler.Reconcile(s.kind, toLines(priorItems), doc.Lines()); err != nil {
		return Document{}, err
	}

	if editing {
		if err := s.repo.Replace(doc.ID, doc); err != nil {
			return Document{}, err
		}
	} else {
		if err := s.repo.Insert(doc); err != nil {
			return Document{}, err
		}
	}
	s.saveSnapshot(ctx)
	return doc, nil
}

// Delete reconciles the document out of the catalog and removes it. A deleted
// sale restores stock; a deleted purchase removes stock unconditionally, even
// below zero. There is no insufficiency check on deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, ok := s.repo.Get(id)
	if !ok {
		return ErrNotFound
	}
	if err := s.reconciler.Reconcile(s.kind, doc.Lines(), nil); err != nil {
		return fmt.Errorf("reconcile delete: %w", err)
	}
	if err := s.repo.Remove(id); err != nil {
		return err
	}
	s.saveSnapshot(ctx)
	return nil
}

// saveSnapshot pushes the documents and the mutated product quantities to the
// persistence collaborator. Durability is best-effort: a failed write is
// logged and the in-memory state stands.
func (s *Service) saveSnapshot(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveDocuments(ctx, s.kind, s.repo.List()); err != nil {
		s.logger.Warn("persist documents failed", slog.String("kind", string(s.kind)), slog.Any("error", err))
	}
	if err := s.persist.SaveCatalog(ctx); err != nil {
		s.logger.Warn("persist catalog failed", slog.Any("error", err))
	}
}
