package view

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/admin"
)

func TestNaira(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"0", "₦0.00"},
		{"12.5", "₦12.50"},
		{"1234.5", "₦1,234.50"},
		{"1234567.891", "₦1,234,567.89"},
		{"-4500", "-₦4,500.00"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Naira(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestHumanizeAndDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "In Transit", Humanize("IN_TRANSIT"))
	require.Equal(t, "Pending", Humanize("pending"))
	require.Equal(t, "", Humanize(""))
	require.Equal(t, "-", Date(time.Time{}))
	require.Equal(t, "Mar 4, 2025", Date(time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)))
}

func courierState() resource.State[domain.Courier] {
	c := domain.Courier{
		ID: 7, CompanyName: "Swift Dispatch", Email: "ops@swift.ng", Phone: "0803",
		User: &domain.User{ID: 70, FirstName: "Tolu", LastName: "Ade", IsActive: true},
		Documents: []domain.Document{
			{ID: 1, Type: "CAC_CERTIFICATE", URL: "https://files/cac.pdf", Status: domain.DocumentPending},
			{ID: 2, Type: "ID_CARD", Status: domain.DocumentApproved},
		},
	}
	return resource.State[domain.Courier]{
		Resource:   admin.Couriers,
		Items:      []domain.Courier{c},
		Pagination: domain.Pagination{Total: 11, Page: 2, Limit: 10, TotalPages: 2},
		Query:      "swift",
		Status:     resource.StatusAll,
		Selected:   &c,
		Loaded:     true,
		HasPrev:    true,
	}
}

func TestBuildGrid_CourierRowsAndDetail(t *testing.T) {
	t.Parallel()

	g := BuildGrid(courierState(), CourierScreen)

	require.Equal(t, "Couriers", g.Title)
	require.Len(t, g.Rows, 1)
	require.Equal(t, "7", g.Rows[0].ID)
	require.Equal(t, "Swift Dispatch", g.Rows[0].Cells[0].Text)
	require.Equal(t, "Pending", g.Rows[0].Cells[4].Text)
	require.Equal(t, TonePending, g.Rows[0].Cells[4].Tone)
	require.Len(t, g.StatusOptions, 4)
	require.True(t, g.StatusOptions[0].Selected)

	require.NotNil(t, g.Detail)
	require.Len(t, g.Detail.Documents, 2)
	kinds := make([]string, 0, len(g.Detail.Actions))
	for _, a := range g.Detail.Actions {
		kinds = append(kinds, a.Kind)
	}
	require.Equal(t, []string{"approve-document", "reject-document"}, kinds)
}

func TestGrid_URLsKeepFilters(t *testing.T) {
	t.Parallel()

	g := BuildGrid(courierState(), CourierScreen)

	require.Equal(t, "/admin/couriers?limit=10&page=1&q=swift", g.PrevURL())
	require.Equal(t, "/admin/couriers?limit=10&page=2&q=swift", g.CloseURL())
	require.Equal(t, "/admin/couriers?limit=10&page=2&q=swift&view=7", g.ViewURL("7"))
	require.Equal(t, "/admin/couriers/7/actions?limit=10&page=2&q=swift&view=7", g.ActionURL("7"))
	require.Equal(t, "/admin/couriers/export.xlsx?limit=10&page=2&q=swift", g.ExportURL())
	require.Contains(t, g.ReloadURL(), "reload=1")
}

func TestTransactionDetail_History(t *testing.T) {
	t.Parallel()

	tx := domain.Transaction{
		ID: 3, TrackingID: "RU-1", Status: domain.TransactionInTransit,
		Cost: decimal.NewFromInt(2500),
		StatusHistories: []domain.StatusHistory{
			{Status: domain.TransactionPending, ChangedAt: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
			{Status: domain.TransactionInTransit, ChangedAt: time.Date(2025, 1, 1, 11, 30, 0, 0, time.UTC)},
		},
	}
	d := TransactionDetail(tx)
	require.Equal(t, "In Transit", d.Badge)
	require.Equal(t, ToneInfo, d.Tone)
	require.Empty(t, d.Actions)
	require.Equal(t, []Field{
		{Label: "Pending", Value: "Jan 1, 2025 09:00"},
		{Label: "In Transit", Value: "Jan 1, 2025 11:30"},
	}, d.History)
}

func TestRenderer_AllPagesRender(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	terms, ok, err := Terms(TermsUser)
	require.NoError(t, err)
	require.True(t, ok)

	bodies := map[string]any{
		PageTable:     BuildGrid(courierState(), CourierScreen),
		PageDashboard: admin.Dashboard{Counts: domain.Counts{TotalCouriers: 4}},
		PageTerms:     terms,
		PageError:     "Something went wrong.",
	}
	user := &domain.User{FirstName: "Ada", LastName: "Admin"}
	for _, page := range []string{
		PageHome, PageQuote, PageQuoteLocal, PageQuoteIntl, PageContact, PageTerms,
		PageLogin, PageDashboard, PageTable, PageSettings, PageError, PageLogoutConfirm,
	} {
		require.True(t, r.Has(page), page)
		out, err := r.Render(page, Data{
			Title: "x", Admin: true, User: user,
			CSRF: template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="tok">`),
			Body: bodies[page],
		})
		require.NoError(t, err, page)
		require.Contains(t, string(out), "<main>", page)
	}
}

func TestRenderer_TableModalAndBanner(t *testing.T) {
	t.Parallel()

	r := MustRenderer()
	rec := httptest.NewRecorder()
	err := r.HTML(rec, http.StatusOK, PageTable, Data{
		Admin: true,
		User:  &domain.User{FirstName: "Ada"},
		Error: "Could not reach the server.",
		Body:  BuildGrid(courierState(), CourierScreen),
	})
	require.NoError(t, err)

	html := rec.Body.String()
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, html, `role="alert">Could not reach the server.`)
	require.Contains(t, html, `class="modal-backdrop" href="/admin/couriers?limit=10&amp;page=2&amp;q=swift"`)
	require.Contains(t, html, "Approve CAC_CERTIFICATE")
	require.Contains(t, html, "https://files/cac.pdf")
	require.Equal(t, 1, strings.Count(html, `class="modal"`))
}

func TestRenderer_FormKeepsValuesAndFieldErrors(t *testing.T) {
	t.Parallel()

	r := MustRenderer()
	out, err := r.Render(PageQuoteLocal, Data{
		Form:   map[string]string{"fullName": "Ada Obi", "currency": "ngn"},
		Fields: map[string]string{"toCity": "This field is required."},
	})
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, `value="Ada Obi"`)
	require.Contains(t, html, `<option value="ngn" selected>`)
	require.Contains(t, html, "This field is required.")
}

func TestRenderer_UnknownPage(t *testing.T) {
	t.Parallel()

	_, err := MustRenderer().Render("nope", Data{})
	require.Error(t, err)
}

func TestTerms_RenderMarkdown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{TermsGeneral, TermsUser, TermsCourier} {
		p, ok, err := Terms(name)
		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, string(p.HTML), "<h1>")
	}
	_, ok, err := Terms("missing")
	require.NoError(t, err)
	require.False(t, ok)
}
