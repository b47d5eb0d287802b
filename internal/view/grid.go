package view

import (
	"net/url"
	"strconv"

	"ruru-backoffice/internal/resource"
)

// Cell is one rendered table cell.
type Cell struct {
	Text string
	Tone string
}

// Row is one rendered table row.
type Row struct {
	ID    string
	Cells []Cell
}

// Option is an entry of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Grid is the template model of a resource list page.
type Grid struct {
	Resource      string
	Title         string
	Headers       []string
	Rows          []Row
	Query         string
	Status        string
	StatusOptions []Option
	Page          int
	Limit         int
	Total         int
	TotalPages    int
	Shown         int
	HasPrev       bool
	HasNext       bool
	Loaded        bool
	Error         string
	Detail        *Detail
}

// Screen describes how to render one resource.
type Screen[T any] struct {
	Title    string
	Columns  []Column[T]
	ID       func(T) string
	Detail   func(T) *Detail
	Statuses []string
}

// BuildGrid renders a table snapshot into a Grid.
func BuildGrid[T any](st resource.State[T], s Screen[T]) Grid {
	g := Grid{
		Resource:   st.Resource,
		Title:      s.Title,
		Query:      st.Query,
		Status:     st.Status,
		Page:       st.Pagination.Page,
		Limit:      st.Pagination.Limit,
		Total:      st.Pagination.Total,
		TotalPages: st.Pagination.TotalPages,
		Shown:      len(st.Items),
		HasPrev:    st.HasPrev,
		HasNext:    st.HasNext,
		Loaded:     st.Loaded,
		Error:      st.Error,
	}
	for _, c := range s.Columns {
		g.Headers = append(g.Headers, c.Header)
	}
	g.Rows = make([]Row, 0, len(st.Items))
	for _, it := range st.Items {
		row := Row{ID: s.ID(it), Cells: make([]Cell, 0, len(s.Columns))}
		for _, c := range s.Columns {
			cell := Cell{Text: c.Value(it)}
			if c.Tone != nil {
				cell.Tone = c.Tone(it)
			}
			row.Cells = append(row.Cells, cell)
		}
		g.Rows = append(g.Rows, row)
	}
	g.StatusOptions = statusOptions(s.Statuses, st.Status)
	if st.Selected != nil && s.Detail != nil {
		g.Detail = s.Detail(*st.Selected)
	}
	return g
}

func statusOptions(values []string, current string) []Option {
	if len(values) == 0 {
		return nil
	}
	out := make([]Option, 0, len(values)+1)
	out = append(out, Option{Value: resource.StatusAll, Label: "All", Selected: current == resource.StatusAll || current == ""})
	for _, v := range values {
		out = append(out, Option{Value: v, Label: Humanize(v), Selected: v == current})
	}
	return out
}

// Path is the list page path.
func (g Grid) Path() string { return "/admin/" + g.Resource }

func (g Grid) values(page int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if g.Limit > 0 {
		v.Set("limit", strconv.Itoa(g.Limit))
	}
	if g.Query != "" {
		v.Set("q", g.Query)
	}
	if g.Status != "" && g.Status != resource.StatusAll {
		v.Set("status", g.Status)
	}
	return v
}

// PageURL links to page p keeping the filters.
func (g Grid) PageURL(p int) string { return g.Path() + "?" + g.values(p).Encode() }

// PrevURL links to the previous page.
func (g Grid) PrevURL() string { return g.PageURL(g.Page - 1) }

// NextURL links to the next page.
func (g Grid) NextURL() string { return g.PageURL(g.Page + 1) }

// ViewURL opens the detail modal of id.
func (g Grid) ViewURL(id string) string {
	v := g.values(g.Page)
	v.Set("view", id)
	return g.Path() + "?" + v.Encode()
}

// CloseURL closes the detail modal.
func (g Grid) CloseURL() string { return g.PageURL(g.Page) }

// ReloadURL refetches the current page from the API.
func (g Grid) ReloadURL() string {
	v := g.values(g.Page)
	v.Set("reload", "1")
	return g.Path() + "?" + v.Encode()
}

// ExportURL downloads the filtered page as XLSX.
func (g Grid) ExportURL() string { return g.Path() + "/export.xlsx?" + g.values(g.Page).Encode() }

// ActionURL is the form target of a detail action on id.
func (g Grid) ActionURL(id string) string {
	v := g.values(g.Page)
	v.Set("view", id)
	return g.Path() + "/" + url.PathEscape(id) + "/actions?" + v.Encode()
}
