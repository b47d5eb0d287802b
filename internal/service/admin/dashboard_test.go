package admin

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
)

func TestDashboard_CountsAndRecent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := NewMockAPI(ctrl)
	s, _, _, _ := newService(t)

	api.EXPECT().Counts(gomock.Any()).Return(domain.Counts{TotalCouriers: 4, TotalRiders: 20, TotalCustomers: 310}, nil)
	api.EXPECT().
		ListTransactions(gomock.Any(), domain.PageRequest{Page: 1, Limit: 5}).
		Return(domain.Page[domain.Transaction]{Data: []domain.Transaction{{ID: 1}, {ID: 2}}}, nil)

	d, err := s.Dashboard(context.Background(), api)
	require.NoError(t, err)
	require.Equal(t, 310, d.Counts.TotalCustomers)
	require.Len(t, d.Recent, 2)
}

func TestDashboard_ErrorFromEitherCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := NewMockAPI(ctrl)
	s, _, _, _ := newService(t)

	api.EXPECT().Counts(gomock.Any()).Return(domain.Counts{}, apperr.Transport)
	api.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(domain.Page[domain.Transaction]{}, nil).AnyTimes()

	_, err := s.Dashboard(context.Background(), api)
	require.ErrorIs(t, err, apperr.Transport)
}
