package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
)

func TestList(t *testing.T) {
	t.Parallel()

	tools, err := New().List(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 5)
	require.Equal(t, "boot-calculator", tools[0].Slug)
	require.Equal(t, "/tools/boot-calculator", tools[0].Route)
}

func TestGet(t *testing.T) {
	t.Parallel()

	tool, err := New().Get(context.Background(), "deadline-calculator")
	require.NoError(t, err)
	require.Equal(t, "Deadline Calculator", tool.Name)

	_, err = New().Get(context.Background(), "tax-oracle")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetRequiresCalculator(t *testing.T) {
	t.Parallel()

	for _, tool := range catalog.Tools() {
		_, err := New().Get(context.Background(), tool.Slug)
		require.NoError(t, err, tool.Slug)
	}
}
