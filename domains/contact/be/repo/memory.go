package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

// MemoryRepository keeps leads in process. Used by tests and LEAD_STORE=memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]persistence.Lead
}

// NewMemoryRepository constructs a MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leads: make(map[uuid.UUID]persistence.Lead)}
}

func (r *MemoryRepository) Create(ctx context.Context, lead persistence.Lead) (persistence.Lead, error) {
	if err := ctx.Err(); err != nil {
		return persistence.Lead{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.LeadID]; exists {
		return persistence.Lead{}, persistence.ErrLeadConflict
	}
	lead.CreatedAt = lead.CreatedAt.UTC()
	r.leads[lead.LeadID] = lead
	return lead, nil
}

func (r *MemoryRepository) List(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params = params.Normalized()

	r.mu.RLock()
	items := make([]persistence.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		items = append(items, lead)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].LeadID.String() < items[j].LeadID.String()
	})

	start := min(params.Offset, len(items))
	end := min(start+params.Limit, len(items))
	return items[start:end], nil
}
