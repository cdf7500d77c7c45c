package setups

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/content"
)

func TestLoadEmbeddedContent(t *testing.T) {
	t.Parallel()

	loaded, err := LoadContent(ContentConfig{}.FS())
	require.NoError(t, err)

	require.Equal(t, "Fort Worth", loaded.Site.PrimaryCity())
	require.Len(t, loaded.Catalog.Locations(), 40)
	require.Len(t, loaded.Catalog.Duplicates(), 2)
	require.Empty(t, loaded.Issues)
}

func TestLoadContentFallsBackToEmbeddedSchemas(t *testing.T) {
	t.Parallel()

	site, err := fs.ReadFile(content.FS(), content.SiteFile)
	require.NoError(t, err)

	fsys := fstest.MapFS{
		content.SiteFile:                  {Data: site},
		"batches/locations/batch-01.json": {Data: []byte(`{"keller": {"mainDescription": "<p>Keller investors exchange rentals.</p>"}}`)},
	}

	loaded, err := LoadContent(fsys)
	require.NoError(t, err)
	require.Len(t, loaded.Catalog.Locations(), 1)
}

func TestContentConfig(t *testing.T) {
	t.Parallel()

	require.Empty(t, ContentConfig{}.BatchDir())
	require.Equal(t, filepath.Join("site", "batches"), ContentConfig{Dir: "site"}.BatchDir())
}

func TestOpenLeads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	repo, release, err := OpenLeads(ctx, LeadStoreConfig{Kind: "memory"})
	require.NoError(t, err)
	require.NotNil(t, repo)
	release()

	repo, release, err = OpenLeads(ctx, LeadStoreConfig{Kind: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "leads.db")})
	require.NoError(t, err)
	require.NotNil(t, repo)
	release()

	_, _, err = OpenLeads(ctx, LeadStoreConfig{Kind: "postgres"})
	require.ErrorContains(t, err, "DATABASE_URL")

	_, _, err = OpenLeads(ctx, LeadStoreConfig{Kind: "redis"})
	require.ErrorContains(t, err, "invalid LEAD_STORE")
}

func TestOpenAssets(t *testing.T) {
	t.Parallel()

	backend, release, err := OpenAssets(context.Background(), AssetConfig{Backend: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, backend.Check(context.Background()))
	release()

	_, _, err = OpenAssets(context.Background(), AssetConfig{Backend: "gcs"})
	require.ErrorContains(t, err, "ASSET_BUCKET")

	_, _, err = OpenAssets(context.Background(), AssetConfig{Backend: "s3"})
	require.ErrorContains(t, err, "invalid ASSET_BACKEND")
}
