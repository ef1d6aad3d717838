package documents

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepositoryInsertGetRemove(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Insert(Document{ID: "d1", Number: "SALE-001"}))
	require.NoError(t, repo.Insert(Document{ID: "d2", Number: "SALE-002"}))
	require.ErrorIs(t, repo.Insert(Document{ID: "d1"}), ErrDuplicateID)

	doc, ok := repo.Get("d2")
	require.True(t, ok)
	require.Equal(t, "SALE-002", doc.Number)

	require.NoError(t, repo.Remove("d1"))
	require.ErrorIs(t, repo.Remove("d1"), ErrNotFound)
	require.Equal(t, 1, repo.Len())

	// Removal reindexes: the survivor stays reachable.
	doc, ok = repo.Get("d2")
	require.True(t, ok)
	require.Equal(t, "d2", doc.ID)
}

func TestRepositoryReplace(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Insert(Document{ID: "d1", Number: "SALE-001"}))
	require.NoError(t, repo.Replace("d1", Document{ID: "d1", Number: "SALE-001", PartyName: "ACME"}))
	require.ErrorIs(t, repo.Replace("nope", Document{ID: "nope"}), ErrNotFound)

	doc, _ := repo.Get("d1")
	require.Equal(t, "ACME", doc.PartyName)
}

func TestRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Insert(Document{ID: "b", Number: "SALE-002"}))
	require.NoError(t, repo.Insert(Document{ID: "a", Number: "SALE-001"}))

	docs := repo.List()
	require.Len(t, docs, 2)
	require.Equal(t, "b", docs[0].ID)
	require.Equal(t, "a", docs[1].ID)
}

func TestRepositorySearch(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Insert(Document{ID: "d1", Number: "SALE-001", PartyName: "Nile Traders"}))
	require.NoError(t, repo.Insert(Document{ID: "d2", Number: "SALE-012", PartyName: "Delta Builders"}))

	require.Len(t, repo.Search(""), 2)
	require.Len(t, repo.Search("001"), 1)
	require.Len(t, repo.Search("nile"), 1)
	require.Len(t, repo.Search("BUILD"), 1)
	require.Empty(t, repo.Search("nothing"))
}
