package resource

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
)

type company struct {
	ID     int
	Name   string
	Email  string
	Active bool
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc()         { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

func descriptor(fetch func(context.Context, domain.PageRequest) (domain.Page[company], error)) Descriptor[company] {
	return Descriptor[company]{
		Name:         "companies",
		Fetch:        fetch,
		ID:           func(c company) string { return strconv.Itoa(c.ID) },
		SearchFields: func(c company) []string { return []string{c.Name, c.Email} },
		Status: func(c company) string {
			if c.Active {
				return "active"
			}
			return "inactive"
		},
	}
}

func staticPage(items []company, p domain.Pagination) func(context.Context, domain.PageRequest) (domain.Page[company], error) {
	return func(context.Context, domain.PageRequest) (domain.Page[company], error) {
		return domain.Page[company]{Data: items, Pagination: p}, nil
	}
}

func sample() []company {
	return []company{
		{ID: 1, Name: "Express Logistics", Email: "contact@expresslogistics.com", Active: true},
		{ID: 2, Name: "Fast Delivery", Email: "info@fastdelivery.com", Active: true},
		{ID: 3, Name: "City Riders", Email: "support@cityriders.com"},
	}
}

func TestTable_PaginationControls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       int
		totalPages int
		wantPrev   bool
		wantNext   bool
	}{
		{name: "first of many", page: 1, totalPages: 4, wantPrev: false, wantNext: true},
		{name: "middle", page: 2, totalPages: 4, wantPrev: true, wantNext: true},
		{name: "last", page: 4, totalPages: 4, wantPrev: true, wantNext: false},
		{name: "single page", page: 1, totalPages: 1, wantPrev: false, wantNext: false},
		{name: "empty result", page: 1, totalPages: 0, wantPrev: false, wantNext: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{
				Total: 30, Page: tc.page, Limit: 10, TotalPages: tc.totalPages,
			})), nil)
			require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: tc.page, Limit: 10}))
			require.Equal(t, tc.wantPrev, tbl.HasPrev())
			require.Equal(t, tc.wantNext, tbl.HasNext())

			snap := tbl.Snapshot()
			require.Equal(t, tc.wantPrev, snap.HasPrev)
			require.Equal(t, tc.wantNext, snap.HasNext)
		})
	}
}

func TestTable_FilterIsCaseInsensitiveOverLoadedPage(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	tbl.SetQuery("express")
	got := tbl.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, "Express Logistics", got[0].Name)

	tbl.SetQuery("EXPRESS")
	require.Len(t, tbl.Filtered(), 1)

	tbl.SetQuery("  ")
	require.Len(t, tbl.Filtered(), 3)

	tbl.SetQuery("nobody")
	require.Empty(t, tbl.Filtered())
}

func TestTable_StatusFilterCombinesWithQuery(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	tbl.SetStatus("inactive")
	got := tbl.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].ID)

	tbl.SetStatus("active")
	tbl.SetQuery("fast")
	got = tbl.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].ID)

	tbl.SetStatus("")
	tbl.SetQuery("")
	require.Len(t, tbl.Filtered(), 3)
}

func TestTable_LoadFailureKeepsPreviousPage(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fetch := func(context.Context, domain.PageRequest) (domain.Page[company], error) {
		if fail.Load() {
			return domain.Page[company]{}, apperr.Transport
		}
		return domain.Page[company]{Data: sample(), Pagination: domain.Pagination{Page: 1, TotalPages: 2}}, nil
	}
	tbl := NewTable(descriptor(fetch), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	fail.Store(true)
	err := tbl.Load(context.Background(), domain.PageRequest{Page: 2, Limit: 10})
	require.ErrorIs(t, err, apperr.Transport)

	snap := tbl.Snapshot()
	require.Len(t, snap.Items, 3)
	require.Equal(t, apperr.Message(apperr.Transport), snap.Error)
	require.True(t, tbl.NeedsLoad(domain.PageRequest{Page: 2, Limit: 10}))

	fail.Store(false)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))
	require.Empty(t, tbl.Snapshot().Error)
}

func TestTable_StaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, pr domain.PageRequest) (domain.Page[company], error) {
		if pr.Page == 1 {
			close(started)
			<-release
			return domain.Page[company]{Data: sample()[:1], Pagination: domain.Pagination{Page: 1, TotalPages: 2}}, nil
		}
		return domain.Page[company]{Data: sample()[1:], Pagination: domain.Pagination{Page: 2, TotalPages: 2}}, nil
	}
	stale := &counterStub{}
	tbl := NewTable(descriptor(fetch), stale)

	var (
		wg      sync.WaitGroup
		slowErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10})
	}()
	<-started
	require.True(t, tbl.Snapshot().Loading)

	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 2, Limit: 10}))
	close(release)
	wg.Wait()

	require.ErrorIs(t, slowErr, ErrStale)
	require.EqualValues(t, 1, stale.Count())

	snap := tbl.Snapshot()
	require.False(t, snap.Loading)
	require.Equal(t, 2, snap.Pagination.Page)
	require.Len(t, snap.Items, 2)
	require.False(t, tbl.NeedsLoad(domain.PageRequest{Page: 2, Limit: 10}))
}

func TestTable_MutateMergesIntoListAndSelection(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))
	require.True(t, tbl.Select("1"))

	var calls int
	updated, err := tbl.Mutate(context.Background(), "1", func(_ context.Context, c company) (company, error) {
		calls++
		c.Active = false
		return c, nil
	})
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.Equal(t, 1, calls)

	sel, ok := tbl.Selected()
	require.True(t, ok)
	require.False(t, sel.Active)

	snap := tbl.Snapshot()
	require.False(t, snap.Items[0].Active)
	require.True(t, snap.Items[1].Active)
	require.NotNil(t, snap.Selected)
	require.False(t, snap.Selected.Active)
}

func TestTable_MutateFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))
	require.True(t, tbl.Select("2"))

	boom := &apperr.APIError{Status: 500, Message: "could not update user"}
	_, err := tbl.Mutate(context.Background(), "2", func(_ context.Context, c company) (company, error) {
		return company{}, boom
	})
	require.ErrorIs(t, err, boom)

	sel, ok := tbl.Selected()
	require.True(t, ok)
	require.True(t, sel.Active)

	snap := tbl.Snapshot()
	require.True(t, snap.Items[1].Active)
	require.Equal(t, "could not update user", snap.Error)
}

func TestTable_MutateUnknownID(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	_, err := tbl.Mutate(context.Background(), "99", func(context.Context, company) (company, error) {
		return company{}, errors.New("must not be called")
	})
	require.ErrorIs(t, err, apperr.NotFound)
}

func TestTable_SelectAndClose(t *testing.T) {
	t.Parallel()

	tbl := NewTable(descriptor(staticPage(sample(), domain.Pagination{Page: 1, TotalPages: 1})), nil)
	require.False(t, tbl.Select("1"))

	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))
	require.False(t, tbl.Select("42"))
	require.True(t, tbl.Select("3"))

	sel, ok := tbl.Selected()
	require.True(t, ok)
	require.Equal(t, "City Riders", sel.Name)

	tbl.CloseDetail()
	_, ok = tbl.Selected()
	require.False(t, ok)
	require.Nil(t, tbl.Snapshot().Selected)
}
