package site

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/content"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	var info Info
	require.Equal(t, "Fort Worth", info.PrimaryCity())
	require.Equal(t, "TX", info.StateAbbr())
	require.Equal(t, "https://1031exchangefortworth.com", info.SiteURL())
	require.Equal(t, "https://1031exchangefortworth.com/locations/plano", info.AbsoluteURL("/locations/plano"))
}

func TestSiteURLStripsScheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://example.com", Info{Website: "http://example.com/"}.SiteURL())
	require.Equal(t, "https://example.com", Info{Website: "https://example.com"}.SiteURL())
	require.Equal(t, "https://example.com", Info{Website: "example.com"}.AbsoluteURL("/"))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	info, err := Load(content.FS())
	require.NoError(t, err)
	require.Equal(t, "Fort Worth", info.PrimaryCity())
	require.NotEmpty(t, info.Phone)

	_, err = Load(fstest.MapFS{"site.json": {Data: []byte("{")}})
	require.Error(t, err)
}
