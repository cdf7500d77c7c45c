package leadscmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/exchangedesk/fortworth1031/platform/go/export"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

func seed(t *testing.T, n int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leads.db")
	store, err := persistence.OpenSQLiteLeadStore(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	for i := range n {
		_, err := store.CreateLead(context.Background(), persistence.Lead{
			LeadID:    uuid.New(),
			Name:      "Lead",
			Email:     "lead@example.com",
			City:      "Keller",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListLeads(t *testing.T) {
	t.Parallel()

	path := seed(t, 3)

	out, err := run(t, "list", "--store", "sqlite", "--sqlite-path", path, "--limit", "2")
	require.NoError(t, err)
	require.Contains(t, out, "2026-09-01T11:00:00Z")
	require.Contains(t, out, "2026-09-01T10:00:00Z")
	require.NotContains(t, out, "2026-09-01T09:00:00Z")
}

func TestListLeadsEmpty(t *testing.T) {
	t.Parallel()

	out, err := run(t, "list", "--store", "sqlite", "--sqlite-path", seed(t, 0))
	require.NoError(t, err)
	require.Equal(t, "No leads found.\n", out)
}

func TestExportLeads(t *testing.T) {
	t.Parallel()

	path := seed(t, 2)
	outPath := filepath.Join(t.TempDir(), "leads.xlsx")

	out, err := run(t, "export", "--store", "sqlite", "--sqlite-path", path, "--out", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "wrote 2 leads")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.LeadsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestMemoryStoreRejected(t *testing.T) {
	t.Parallel()

	_, err := run(t, "list", "--store", "memory")
	require.Error(t, err)
}
