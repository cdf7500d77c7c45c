package repo

import (
	"context"

	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

// Repository defines the persistence operations required by the contact service.
type Repository interface {
	Create(ctx context.Context, lead persistence.Lead) (persistence.Lead, error)
	List(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error)
}

// LeadStore is implemented by the postgres and sqlite stores in platform/go/persistence.
type LeadStore interface {
	CreateLead(ctx context.Context, lead persistence.Lead) (persistence.Lead, error)
	ListLeads(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error)
}

// StoreRepository adapts a LeadStore to Repository.
type StoreRepository struct {
	store LeadStore
}

// NewPostgresRepository constructs a repository backed by the postgres LeadStore.
func NewPostgresRepository(store *persistence.LeadStore) *StoreRepository {
	if store == nil {
		panic("lead store is required")
	}
	return &StoreRepository{store: store}
}

// NewSQLiteRepository constructs a repository backed by the sqlite lead store.
func NewSQLiteRepository(store *persistence.SQLiteLeadStore) *StoreRepository {
	if store == nil {
		panic("lead store is required")
	}
	return &StoreRepository{store: store}
}

func (r *StoreRepository) Create(ctx context.Context, lead persistence.Lead) (persistence.Lead, error) {
	return r.store.CreateLead(ctx, lead)
}

func (r *StoreRepository) List(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error) {
	return r.store.ListLeads(ctx, params)
}
