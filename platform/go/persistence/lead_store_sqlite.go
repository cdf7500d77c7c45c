package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	sqlassets "github.com/exchangedesk/fortworth1031/database"
)

// Fixed width so created_at sorts lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteLeadStore persists leads in a local SQLite file.
type SQLiteLeadStore struct {
	db *sql.DB
}

// OpenSQLiteLeadStore opens (creating if needed) the database at path in WAL mode.
func OpenSQLiteLeadStore(ctx context.Context, path string) (*SQLiteLeadStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	for _, stmt := range splitStatements(sqlassets.LeadsSQLiteSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply leads ddl: %w", err)
		}
	}

	return &SQLiteLeadStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteLeadStore) Close() error {
	return s.db.Close()
}

// CreateLead inserts a lead and returns the persisted record.
func (s *SQLiteLeadStore) CreateLead(ctx context.Context, lead Lead) (Lead, error) {
	lead, err := prepareLead(lead)
	if err != nil {
		return Lead{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads (lead_id, name, email, phone, property_sold, estimated_close, city, message, project_type, timezone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		lead.LeadID.String(), lead.Name, lead.Email, lead.Phone, lead.PropertySold, lead.EstimatedClose,
		lead.City, lead.Message, lead.ProjectType, lead.Timezone, lead.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Lead{}, ErrLeadConflict
		}
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

// ListLeads returns leads newest first.
func (s *SQLiteLeadStore) ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, error) {
	params = params.Normalized()

	rows, err := s.db.QueryContext(ctx, `
		SELECT lead_id, name, email, phone, property_sold, estimated_close, city, message, project_type, timezone, created_at
		FROM leads
		ORDER BY created_at DESC, lead_id
		LIMIT ? OFFSET ?
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var (
			lead      Lead
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &lead.Name, &lead.Email, &lead.Phone, &lead.PropertySold, &lead.EstimatedClose,
			&lead.City, &lead.Message, &lead.ProjectType, &lead.Timezone, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if lead.LeadID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse lead id %q: %w", id, err)
		}
		if lead.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse lead created_at %q: %w", createdAt, err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
