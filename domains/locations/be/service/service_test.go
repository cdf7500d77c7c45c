package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/content"
	"github.com/exchangedesk/fortworth1031/platform/go/batch"
	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
)

func embeddedHolder(t *testing.T) *catalog.Holder {
	t.Helper()

	c, _, err := catalog.Load(content.FS(), catalog.Options{PrimaryCity: "Fort Worth", StateAbbr: "TX"})
	require.NoError(t, err)
	return catalog.NewHolder(c)
}

func slugsOf(items []catalog.LocationItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Slug)
	}
	return out
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	svc := New(embeddedHolder(t))
	ctx := context.Background()

	all, err := svc.List(ctx, "   ")
	require.NoError(t, err)
	require.Len(t, all, 33)

	worth, err := svc.List(ctx, "  WORTH ")
	require.NoError(t, err)
	require.Equal(t, []string{"fort-worth", "lake-worth", "westworth-village"}, slugsOf(worth))

	none, err := svc.List(ctx, "atlantis")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	svc := New(embeddedHolder(t))

	detail, err := svc.Get(context.Background(), "fort-worth")
	require.NoError(t, err)
	require.Equal(t, "Fort Worth", detail.Item.Name)
	require.Contains(t, detail.HTML, "improvement exchanges")
	require.Len(t, detail.Services, relatedServices)

	remote, err := svc.Get(context.Background(), "remote")
	require.NoError(t, err)
	require.Equal(t, catalog.Remote, remote.Item.Type)

	saginaw, err := svc.Get(context.Background(), "saginaw")
	require.NoError(t, err)
	require.Empty(t, saginaw.HTML)

	_, err = svc.Get(context.Background(), "atlantis")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "Saginaw")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServicePreview(t *testing.T) {
	t.Parallel()

	svc := New(embeddedHolder(t))

	preview, err := svc.Preview(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, []string{
		"fort-worth", "arlington", "dallas", "plano", "irving", "grand-prairie", "keller", "north-richland-hills",
	}, slugsOf(preview))

	empty, err := svc.Preview(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestServiceFollowsSnapshotSwaps(t *testing.T) {
	t.Parallel()

	holder := embeddedHolder(t)
	svc := New(holder)

	holder.Swap(catalog.Build(batch.NewStore(), catalog.Options{}))

	items, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestServiceHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(embeddedHolder(t)).List(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
}
