package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/domain"
)

func TestOpen_KeepsStateForSameResource(t *testing.T) {
	t.Parallel()

	ws := &Workspace{}
	d := descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1}))

	first := Open(ws, d, nil)
	require.NoError(t, first.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))
	first.SetQuery("city")

	again := Open(ws, d, nil)
	require.Same(t, first, again)
	require.Len(t, again.Filtered(), 1)
	require.Equal(t, "companies", ws.Current())
}

func TestOpen_NavigationDiscardsPreviousResource(t *testing.T) {
	t.Parallel()

	ws := &Workspace{}
	d := descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1}))
	first := Open(ws, d, nil)
	require.NoError(t, first.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	other := d
	other.Name = "others"
	Open(ws, other, nil)

	back := Open(ws, d, nil)
	require.NotSame(t, first, back)
	require.False(t, back.Snapshot().Loaded)
}

func TestRegistry_EvictsIdleWorkspaces(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10 * time.Minute)
	r.now = func() time.Time { return now }

	a := r.Get("a")
	require.Same(t, a, r.Get("a"))
	r.Get("b")
	require.Equal(t, 2, r.Len())

	now = now.Add(8 * time.Minute)
	r.Get("b")

	now = now.Add(5 * time.Minute)
	r.Get("b")
	require.Equal(t, 1, r.Len())

	r.Drop("b")
	require.Equal(t, 0, r.Len())
}
