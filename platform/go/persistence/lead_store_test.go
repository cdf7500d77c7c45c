package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type leadStore interface {
	CreateLead(ctx context.Context, lead Lead) (Lead, error)
	ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, error)
}

func sampleLead(name string, createdAt time.Time) Lead {
	return Lead{
		LeadID:         uuid.New(),
		Name:           "  " + name + " ",
		Email:          "investor@example.com",
		Phone:          "817-555-0100",
		PropertySold:   "Duplex in Arlington",
		EstimatedClose: "2026-12-01",
		City:           "Fort Worth",
		Message:        "Looking at NNN replacement property.",
		ProjectType:    "Pharmacy",
		Timezone:       "America/Chicago",
		CreatedAt:      createdAt,
	}
}

func exerciseLeadStore(t *testing.T, store leadStore) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC)
	first, err := store.CreateLead(ctx, sampleLead("Ada", base))
	require.NoError(t, err)
	require.Equal(t, "Ada", first.Name)

	second, err := store.CreateLead(ctx, sampleLead("Grace", base.Add(1500*time.Millisecond)))
	require.NoError(t, err)

	_, err = store.CreateLead(ctx, first)
	require.ErrorIs(t, err, ErrLeadConflict)

	leads, err := store.ListLeads(ctx, ListLeadsParams{})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	require.Equal(t, second.LeadID, leads[0].LeadID)
	require.Equal(t, first.LeadID, leads[1].LeadID)
	require.True(t, base.Equal(leads[1].CreatedAt))
	require.Equal(t, "America/Chicago", leads[1].Timezone)

	page, err := store.ListLeads(ctx, ListLeadsParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, first.LeadID, page[0].LeadID)

	_, err = store.CreateLead(ctx, Lead{})
	require.Error(t, err)
}

func TestSQLiteLeadStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "leads.db")
	store, err := OpenSQLiteLeadStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseLeadStore(t, store)
}

func TestOpenSQLiteLeadStoreRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := OpenSQLiteLeadStore(context.Background(), " ")
	require.Error(t, err)
}

func TestListLeadsParamsNormalized(t *testing.T) {
	t.Parallel()

	require.Equal(t, ListLeadsParams{Limit: defaultLeadPageSize}, ListLeadsParams{Offset: -3}.Normalized())
	require.Equal(t, maxLeadPageSize, ListLeadsParams{Limit: 10_000}.Normalized().Limit)
}

func TestPostgresLeadStore(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("skipping postgres lead store integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("leads"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp").WithStartupTimeout(2*time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, PoolConfig{ConnString: connString, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { ClosePool(pool) })

	store, err := NewLeadStore(ctx, pool)
	require.NoError(t, err)

	// A second call must be idempotent.
	_, err = NewLeadStore(ctx, pool)
	require.NoError(t, err)

	exerciseLeadStore(t, store)
}
