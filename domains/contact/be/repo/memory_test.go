package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := range 3 {
		lead := persistence.Lead{LeadID: uuid.New(), Name: "Lead", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		_, err := repo.Create(ctx, lead)
		require.NoError(t, err)
		ids = append(ids, lead.LeadID)
	}

	_, err := repo.Create(ctx, persistence.Lead{LeadID: ids[0]})
	require.ErrorIs(t, err, persistence.ErrLeadConflict)

	all, err := repo.List(ctx, persistence.ListLeadsParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[0].LeadID)
	require.Equal(t, ids[0], all[2].LeadID)

	page, err := repo.List(ctx, persistence.ListLeadsParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, ids[1], page[0].LeadID)

	empty, err := repo.List(ctx, persistence.ListLeadsParams{Offset: 10})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSQLiteRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := persistence.OpenSQLiteLeadStore(ctx, t.TempDir()+"/leads.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewSQLiteRepository(store)
	created, err := repo.Create(ctx, persistence.Lead{LeadID: uuid.New(), Name: " Dana ", Email: "dana@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Dana", created.Name)

	leads, err := repo.List(ctx, persistence.ListLeadsParams{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, created.LeadID, leads[0].LeadID)
}
