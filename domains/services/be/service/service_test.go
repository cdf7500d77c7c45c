package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/content"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
)

func newEmbedded(t *testing.T) Service {
	t.Helper()

	c, _, err := catalog.Load(content.FS(), catalog.Options{PrimaryCity: "Fort Worth", StateAbbr: "TX"})
	require.NoError(t, err)
	return New(catalog.NewHolder(c))
}

func slugsOf(items []catalog.ServiceItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Slug)
	}
	return out
}

func TestServiceListAndPreview(t *testing.T) {
	t.Parallel()

	svc := newEmbedded(t)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 24)
	require.Equal(t, "reverse-exchange", all[1].Slug)

	preview, err := svc.Preview(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, []string{"forward-exchange", "reverse-exchange", "simultaneous-exchange"}, slugsOf(preview))

	none, err := svc.Preview(context.Background(), -1)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestServiceByCategory(t *testing.T) {
	t.Parallel()

	groups, err := newEmbedded(t).ByCategory(context.Background())
	require.NoError(t, err)

	got := map[catalog.ServiceCategory][]string{}
	order := make([]catalog.ServiceCategory, 0, len(groups))
	for _, g := range groups {
		order = append(order, g.Category)
		got[g.Category] = slugsOf(g.Items)
	}

	require.Equal(t, []catalog.ServiceCategory{catalog.Structures, catalog.PropertyPaths, catalog.Tax, catalog.Timelines}, order)

	want := map[catalog.ServiceCategory][]string{
		catalog.Structures: {
			"forward-exchange", "reverse-exchange", "simultaneous-exchange", "delayed-exchange",
			"build-to-suit-exchange", "improvement-exchange", "partial-exchange",
			"exchange-documentation", "exchange-reporting", "exchange-education", "exchange-consultation",
		},
		catalog.PropertyPaths: {
			"multi-property-exchange", "qualified-intermediary-services", "qualified-escrow-services",
			"property-identification", "nnn-property-identification", "retail-property-identification",
			"industrial-property-identification", "medical-property-identification", "investor-resources",
		},
		catalog.Tax:       {"tax-basis-calculation", "boot-analysis", "depreciation-recapture-planning"},
		catalog.Timelines: {"timeline-review"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	svc := newEmbedded(t)

	detail, err := svc.Get(context.Background(), "boot-analysis")
	require.NoError(t, err)
	require.Equal(t, catalog.Tax, detail.Item.Category)
	require.NotEmpty(t, detail.HTML)
	require.Equal(t, []string{"tax-basis-calculation", "depreciation-recapture-planning"}, slugsOf(detail.Related))

	structures, err := svc.Get(context.Background(), "forward-exchange")
	require.NoError(t, err)
	require.Len(t, structures.Related, relatedLimit)

	empty, err := svc.Get(context.Background(), "improvement-exchange")
	require.NoError(t, err)
	require.Empty(t, empty.HTML)

	_, err = svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "improvement_exchange")
	require.ErrorIs(t, err, ErrNotFound)
}
