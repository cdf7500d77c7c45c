package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticData(t *testing.T) {
	t.Parallel()

	categories := InventoryCategories()
	require.Len(t, categories, 6)
	require.Equal(t, "/inventory/food-service", categories[5].Route)

	types := PropertyTypes()
	known := make(map[string]bool, len(types))
	for _, pt := range types {
		require.Equal(t, InventoryRoute(pt.Slug), pt.Route)
		known[pt.Slug] = true
	}

	for _, c := range categories {
		slugs := CategoryPropertyTypes(c.Slug)
		require.NotEmpty(t, slugs, c.Slug)
		for _, s := range slugs {
			require.True(t, known[s], "%s lists unknown property type %s", c.Slug, s)
		}
	}
	require.Nil(t, CategoryPropertyTypes("pharmacy"))

	tools := Tools()
	require.Len(t, tools, 5)
	require.Equal(t, "/tools/boot-calculator", tools[0].Route)

	tools[0].Name = "mutated"
	require.Equal(t, "Boot Calculator", Tools()[0].Name)
}
