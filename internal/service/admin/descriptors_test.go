package admin

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/resource"
)

func TestCourierDescriptor_SearchExpress(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	api := NewMockAPI(ctrl)

	couriers := []domain.Courier{
		{ID: 1, CompanyName: "Express Logistics", Email: "contact@expresslogistics.com"},
		{ID: 2, CompanyName: "Fast Delivery", Email: "info@fastdelivery.com"},
		{ID: 3, CompanyName: "City Riders", Email: "support@cityriders.com"},
	}
	api.EXPECT().ListCouriers(gomock.Any(), gomock.Any()).
		Return(domain.Page[domain.Courier]{Data: couriers, Pagination: domain.Pagination{Page: 1, TotalPages: 1}}, nil)

	tbl := resource.NewTable(CourierDescriptor(api), nil)
	require.NoError(t, tbl.Load(context.Background(), domain.PageRequest{Page: 1, Limit: 10}))

	tbl.SetQuery("express")
	got := tbl.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, "Express Logistics", got[0].CompanyName)
}

func TestCourierDescriptor_StatusFilter(t *testing.T) {
	t.Parallel()

	d := CourierDescriptor(nil)
	require.Equal(t, "approved", d.Status(domain.Courier{IsVerified: true}))
	require.Equal(t, "pending", d.Status(domain.Courier{}))
	require.Equal(t, "rejected", d.Status(domain.Courier{Documents: []domain.Document{{Status: domain.DocumentRejected}}}))
}

func TestPersonDescriptors_SearchMisspelledFirstName(t *testing.T) {
	t.Parallel()

	c := domain.Customer{Person: domain.Person{FirstName: "Adaeze", LastName: "Okafor", Email: "ada@x.ng", PhoneNumber: "0803"}}
	require.Contains(t, CustomerDescriptor(nil).SearchFields(c), "Adaeze")
	require.Equal(t, "inactive", CustomerDescriptor(nil).Status(c))

	r := domain.Rider{Person: domain.Person{FirstName: "Musa", IsActive: true}, CourierCompany: &domain.CompanyRef{CompanyName: "City Riders"}}
	require.Contains(t, RiderDescriptor(nil).SearchFields(r), "City Riders")
	require.Equal(t, "active", RiderDescriptor(nil).Status(r))
}

func TestTransactionDescriptor_SearchFields(t *testing.T) {
	t.Parallel()

	tx := domain.Transaction{
		ID: 9, TrackingID: "RURU-0009", SenderName: "Bola", ReceiverName: "Kemi",
		Customer:       &domain.Person{FirstName: "Bola", LastName: "Ade"},
		CourierCompany: &domain.CompanyRef{CompanyName: "Express Logistics"},
		Status:         domain.TransactionInTransit,
		Cost:           decimal.RequireFromString("2500"),
	}
	d := TransactionDescriptor(nil)
	require.Equal(t, "9", d.ID(tx))
	require.Equal(t, []string{"RURU-0009", "Bola", "Kemi", "Bola Ade", "Express Logistics"}, d.SearchFields(tx))
	require.Equal(t, "in_transit", d.Status(tx))
}

func TestActiveLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Active", ActiveLabel(true))
	require.Equal(t, "Inactive", ActiveLabel(false))
}
