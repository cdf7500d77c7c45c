package export

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/exchangedesk/fortworth1031/content"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestLeads(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("5f1f0c1e-8d7a-4c55-9a51-0e6f3c2b9d10")
	leads := []persistence.Lead{{
		LeadID:         id,
		Name:           "Dana Reyes",
		Email:          "dana@example.com",
		Phone:          "817-555-0100",
		PropertySold:   "Duplex",
		EstimatedClose: "2026-12-15",
		City:           "Keller",
		Message:        "Hello",
		CreatedAt:      time.Date(2026, 10, 1, 15, 4, 5, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, Leads(&buf, leads))

	rows := readRows(t, buf.Bytes(), LeadsSheet)
	require.Len(t, rows, 2)
	require.Equal(t, leadHeaders, rows[0])
	require.Equal(t, id.String(), rows[1][0])
	require.Equal(t, "2026-10-01 15:04:05", rows[1][1])
	require.Equal(t, "Dana Reyes", rows[1][2])
	require.Equal(t, "Hello", rows[1][10])
}

func TestContent(t *testing.T) {
	t.Parallel()

	c, _, err := catalog.Load(content.FS(), catalog.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Content(&buf, c))

	locations := readRows(t, buf.Bytes(), LocationsSheet)
	require.Len(t, locations, len(c.Locations())+1)
	require.Equal(t, locationHeaders, locations[0])
	require.Equal(t, "fort-worth", locations[1][0])

	services := readRows(t, buf.Bytes(), ServicesSheet)
	require.Len(t, services, len(c.Services())+1)
	require.Equal(t, serviceHeaders, services[0])
}

func TestContentRequiresCatalog(t *testing.T) {
	t.Parallel()

	require.Error(t, Content(io.Discard, nil))
}

func TestSaveFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "leads.xlsx")
	require.NoError(t, SaveFile(path, func(w io.Writer) error { return Leads(w, nil) }))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LeadsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
