package persistence

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LeadsTable = "leads"

	defaultLeadPageSize = 50
	maxLeadPageSize     = 500
)

// Lead is a persisted contact form submission.
type Lead struct {
	LeadID         uuid.UUID `db:"lead_id" json:"leadId"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	PropertySold   string    `db:"property_sold" json:"propertySold"`
	EstimatedClose string    `db:"estimated_close" json:"estimatedClose"`
	City           string    `db:"city" json:"city"`
	Message        string    `db:"message" json:"message"`
	ProjectType    string    `db:"project_type" json:"projectType,omitempty"`
	Timezone       string    `db:"timezone" json:"timezone,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// ErrLeadConflict indicates a lead with the same id already exists.
var ErrLeadConflict = errors.New("lead conflict")

// ListLeadsParams pages through leads newest first.
type ListLeadsParams struct {
	Limit  int
	Offset int
}

// Normalized applies the default page size and clamps limit and offset.
func (p ListLeadsParams) Normalized() ListLeadsParams {
	if p.Limit <= 0 {
		p.Limit = defaultLeadPageSize
	}
	if p.Limit > maxLeadPageSize {
		p.Limit = maxLeadPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func prepareLead(lead Lead) (Lead, error) {
	if lead.LeadID == uuid.Nil {
		return Lead{}, errors.New("lead id is required")
	}
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.PropertySold = strings.TrimSpace(lead.PropertySold)
	lead.EstimatedClose = strings.TrimSpace(lead.EstimatedClose)
	lead.City = strings.TrimSpace(lead.City)
	lead.Message = strings.TrimSpace(lead.Message)
	lead.ProjectType = strings.TrimSpace(lead.ProjectType)
	lead.Timezone = strings.TrimSpace(lead.Timezone)
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	lead.CreatedAt = lead.CreatedAt.UTC()
	return lead, nil
}

func splitStatements(ddl string) []string {
	raw := strings.Split(ddl, ";")
	statements := make([]string, 0, len(raw))
	for _, stmt := range raw {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
