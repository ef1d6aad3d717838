package documents

import (
	"errors"

	"github.com/stockbook/stockbook/internal/ledger"
)

// LineItem is one product entry inside a document. ProductName and UnitPrice
// are snapshots taken at authoring time and are not re-validated against the
// catalog afterwards. Total is derived and recomputed on every save.
type LineItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Document is a sale invoice or a purchase order: a header plus ordered line
// items. Subtotal, Tax and Total are always recomputed from Items before a
// commit; they are never independently editable.
type Document struct {
	ID        string      `json:"id"`
	Number    string      `json:"documentNumber"`
	PartyID   string      `json:"partyId"`
	PartyName string      `json:"partyName"`
	Date      string      `json:"date"`
	Items     []LineItem  `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	Kind      ledger.Kind `json:"kind"`
}

// Lines projects the items into the reconciler's view.
func (d Document) Lines() []ledger.Line {
	return toLines(d.Items)
}

func toLines(items []LineItem) []ledger.Line {
	out := make([]ledger.Line, 0, len(items))
	for _, it := range items {
		out = append(out, ledger.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

var (
	// ErrNotFound indicates the document id is not in the repository.
	ErrNotFound = errors.New("documents: not found")
	// ErrDuplicateID indicates an insert with an id already in use.
	ErrDuplicateID = errors.New("documents: id already exists")
	// ErrNoItems rejects a document with an empty item list.
	ErrNoItems = errors.New("documents: at least one line item is required")
	// ErrNoParty rejects a document without a customer or supplier.
	ErrNoParty = errors.New("documents: party is required")
)
