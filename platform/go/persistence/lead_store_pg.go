package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	sqlassets "github.com/exchangedesk/fortworth1031/database"
)

// LeadStore persists leads in Postgres.
type LeadStore struct {
	pool *pgxpool.Pool
}

// NewLeadStore ensures the leads table exists and returns a store instance.
func NewLeadStore(ctx context.Context, pool *pgxpool.Pool) (*LeadStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}

	for _, stmt := range splitStatements(sqlassets.LeadsPostgresSQL) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("apply leads ddl: %w", err)
		}
	}

	return &LeadStore{pool: pool}, nil
}

// CreateLead inserts a lead and returns the persisted record.
func (s *LeadStore) CreateLead(ctx context.Context, lead Lead) (Lead, error) {
	lead, err := prepareLead(lead)
	if err != nil {
		return Lead{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO leads (lead_id, name, email, phone, property_sold, estimated_close, city, message, project_type, timezone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING lead_id, name, email, phone, property_sold, estimated_close, city, message, project_type, timezone, created_at
	`,
		lead.LeadID, lead.Name, lead.Email, lead.Phone, lead.PropertySold, lead.EstimatedClose,
		lead.City, lead.Message, lead.ProjectType, lead.Timezone, lead.CreatedAt,
	)

	created, err := scanLead(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Lead{}, ErrLeadConflict
		}
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

// ListLeads returns leads newest first.
func (s *LeadStore) ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, error) {
	params = params.Normalized()

	rows, err := s.pool.Query(ctx, `
		SELECT lead_id, name, email, phone, property_sold, estimated_close, city, message, project_type, timezone, created_at
		FROM leads
		ORDER BY created_at DESC, lead_id
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	if err := row.Scan(
		&lead.LeadID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.PropertySold,
		&lead.EstimatedClose,
		&lead.City,
		&lead.Message,
		&lead.ProjectType,
		&lead.Timezone,
		&lead.CreatedAt,
	); err != nil {
		return Lead{}, err
	}
	lead.CreatedAt = lead.CreatedAt.UTC()
	return lead, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
