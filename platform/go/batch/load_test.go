package batch

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadFormats(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"batches/locations/batch-01.json":     {Data: []byte(`{"zeta": {"mainDescription": "<p>Zeta</p>"}, "alpha": {"mainDescription": "<p>Alpha</p>"}}`)},
		"batches/locations/batch-02.yaml":     {Data: []byte("alpha:\n  mainDescription: \"<p>Alpha two</p>\"\n  rank: 2\nbeta:\n  mainDescription: \"<p>Beta</p>\"\n")},
		"batches/locations/batch-03/gamma.md": {Data: []byte("---\nregion: west\n---\nGamma serves investors.\n")},
		"batches/locations/batch-03/delta.md": {Data: []byte("---\nmainDescription: \"<p>Delta override</p>\"\n---\nignored body\n")},
		"batches/locations/README.txt":        {Data: []byte("not a partition")},
		"batches/inventory/batch-01.json":     {Data: []byte(`[{"type": "nnn", "title": "NNN"}, {"type": "pharmacy", "title": "Pharmacy"}]`)},
		"batches/inventory/batch-02.yaml":     {Data: []byte("- type: retail\n  title: Retail\n")},
	}

	store, err := Load(fsys, "batches")
	require.NoError(t, err)
	require.Equal(t, []Entity{Inventory, Locations}, store.Entities())

	parts := store.Partitions(Locations)
	require.Len(t, parts, 3)
	require.Equal(t, "batch-01", parts[0].Name)
	require.Equal(t, []string{"zeta", "alpha"}, parts[0].Slugs())
	require.Equal(t, []string{"alpha", "beta"}, parts[1].Slugs())
	require.Equal(t, []string{"delta", "gamma"}, parts[2].Slugs())

	merged, dups := store.Merged(Locations)
	require.Equal(t, []string{"zeta", "alpha", "beta", "delta", "gamma"}, merged.Slugs())
	require.Len(t, dups, 1)

	alpha, _ := merged.Get("alpha")
	require.Equal(t, "<p>Alpha two</p>", alpha["mainDescription"])
	require.Equal(t, 2, alpha["rank"])

	gamma, _ := merged.Get("gamma")
	html, ok := gamma.MainDescription()
	require.True(t, ok)
	require.Equal(t, "<p>Gamma serves investors.</p>", html)
	require.Equal(t, "west", gamma["region"])

	delta, _ := merged.Get("delta")
	html, _ = delta.MainDescription()
	require.Equal(t, "<p>Delta override</p>", html)

	items := store.Items(Inventory)
	require.Len(t, items, 3)
	require.Equal(t, "retail", items[2]["type"])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(fstest.MapFS{}, "batches")
	require.Error(t, err)

	_, err = Load(fstest.MapFS{"batches/locations/batch-01.json": {Data: []byte(`{"x": `)}}, "batches")
	require.Error(t, err)

	_, err = Load(fstest.MapFS{"batches/locations/batch-01.json": {Data: []byte(`"scalar"`)}}, "batches")
	require.Error(t, err)

	_, err = Load(fstest.MapFS{"batches/locations/batch-01.yaml": {Data: []byte("just a string")}}, "batches")
	require.Error(t, err)
}

func TestLoadEmptyPartition(t *testing.T) {
	t.Parallel()

	store, err := Load(fstest.MapFS{
		"batches/services/batch-01.json": {Data: []byte(``)},
		"batches/services/batch-02.yaml": {Data: []byte(``)},
	}, "batches")
	require.NoError(t, err)

	merged, _ := store.Merged(Services)
	require.Zero(t, merged.Len())
}
