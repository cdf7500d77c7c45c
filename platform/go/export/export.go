// Package export writes leads and catalog content to xlsx workbooks for review.
package export

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

const (
	LeadsSheet     = "Leads"
	LocationsSheet = "Locations"
	ServicesSheet  = "Services"

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	leadHeaders = []string{
		"lead_id", "created_at", "name", "email", "phone", "property_sold",
		"estimated_close", "city", "project_type", "timezone", "message",
	}
	locationHeaders = []string{"slug", "name", "type", "route", "hero_image", "description"}
	serviceHeaders  = []string{"slug", "name", "category", "route", "short"}
)

// Leads writes one row per lead to a single-sheet workbook.
func Leads(w io.Writer, leads []persistence.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), LeadsSheet); err != nil {
		return err
	}
	writeHeader(f, LeadsSheet, leadHeaders)

	for i, lead := range leads {
		set := rowSetter(f, LeadsSheet, i+2)
		set(1, lead.LeadID.String())
		set(2, lead.CreatedAt.UTC().Format(timestampLayout))
		set(3, lead.Name)
		set(4, lead.Email)
		set(5, lead.Phone)
		set(6, lead.PropertySold)
		set(7, lead.EstimatedClose)
		set(8, lead.City)
		set(9, lead.ProjectType)
		set(10, lead.Timezone)
		set(11, lead.Message)
	}

	_, err := f.WriteTo(w)
	return err
}

// Content writes the normalized locations and services of a catalog snapshot.
func Content(w io.Writer, c *catalog.Catalog) error {
	if c == nil {
		return errors.New("catalog is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), LocationsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ServicesSheet); err != nil {
		return err
	}

	writeHeader(f, LocationsSheet, locationHeaders)
	for i, loc := range c.Locations() {
		set := rowSetter(f, LocationsSheet, i+2)
		set(1, loc.Slug)
		set(2, loc.Name)
		set(3, string(loc.Type))
		set(4, loc.Route)
		set(5, loc.HeroImage)
		set(6, loc.Description)
	}

	writeHeader(f, ServicesSheet, serviceHeaders)
	for i, svc := range c.Services() {
		set := rowSetter(f, ServicesSheet, i+2)
		set(1, svc.Slug)
		set(2, svc.Name)
		set(3, string(svc.Category))
		set(4, svc.Route)
		set(5, svc.Short)
	}

	_, err := f.WriteTo(w)
	return err
}

// SaveFile creates path and its parent directory and hands the file to write.
func SaveFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return write(out)
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func rowSetter(f *excelize.File, sheet string, row int) func(col int, value any) {
	return func(col int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}
