package documents

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Repository is an ordered in-memory document collection keyed by id. One
// instance holds sale documents, another purchase documents; insertion order
// is preserved in listings.
type Repository struct {
	mu   sync.RWMutex
	docs []Document
	byID map[string]int
}

// NewRepository builds an empty repository.
func NewRepository() *Repository {
	return &Repository{byID: make(map[string]int)}
}

// Insert adds a document under a fresh id.
func (r *Repository) Insert(doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[doc.ID]; exists {
		return ErrDuplicateID
	}
	r.byID[doc.ID] = len(r.docs)
	r.docs = append(r.docs, doc)
	return nil
}

// Replace overwrites the document stored under id, keeping its position.
func (r *Repository) Replace(id string, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	doc.ID = id
	r.docs[idx] = doc
	return nil
}

// Remove deletes the document under id.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.docs = append(r.docs[:idx], r.docs[idx+1:]...)
	delete(r.byID, id)
	for i := idx; i < len(r.docs); i++ {
		r.byID[r.docs[i].ID] = i
	}
	return nil
}

// Get returns the document under id.
func (r *Repository) Get(id string) (Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return Document{}, false
	}
	return r.docs[idx], true
}

// List returns all documents in insertion order.
func (r *Repository) List() []Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Len reports the number of stored documents.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// ReplaceAll swaps the whole collection, e.g. when loading a snapshot.
func (r *Repository) ReplaceAll(docs []Document) {
	byID := make(map[string]int, len(docs))
	copied := make([]Document, len(docs))
	copy(copied, docs)
	for i, d := range copied {
		byID[d.ID] = i
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = copied
	r.byID = byID
}

// Search filters documents whose number or party name contains term,
// case-insensitively. An empty term returns the full listing.
func (r *Repository) Search(term string) []Document {
	docs := r.List()
	term = strings.TrimSpace(term)
	if term == "" {
		return docs
	}
	// Casers are stateful, so build one per call rather than sharing.
	fold := cases.Fold()
	needle := fold.String(term)
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if strings.Contains(fold.String(d.Number), needle) ||
			strings.Contains(fold.String(d.PartyName), needle) {
			out = append(out, d)
		}
	}
	return out
}
