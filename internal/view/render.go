package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"ruru-backoffice/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome          = "home"
	PageQuote         = "quote"
	PageQuoteLocal    = "quote_local"
	PageQuoteIntl     = "quote_international"
	PageContact       = "contact"
	PageTerms         = "terms"
	PageLogin         = "login"
	PageDashboard     = "dashboard"
	PageTable         = "table"
	PageSettings      = "settings"
	PageError         = "error"
	PageLogoutConfirm = "logout"
)

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Data is what every page template receives.
type Data struct {
	Title  string
	Admin  bool
	Nav    string
	User   *domain.User
	CSRF   template.HTML
	Flash  string
	Error  string
	Fields map[string]string
	Form   map[string]string
	Body   any
}

// FieldError returns the validation message of a form field.
func (d Data) FieldError(name string) string { return d.Fields[name] }

// Value returns the submitted value of a form field.
func (d Data) Value(name string) string { return d.Form[name] }

// Renderer renders the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"naira":    Naira,
	"date":     Date,
	"datetime": DateTime,
	"humanize": Humanize,
	"lower":    strings.ToLower,
	"tone":     StatusTone,
}

// NewRenderer parses every page together with the layout and partials.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range names {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, partialsFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustRenderer is NewRenderer that panics on a broken template.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether page exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render executes page into a buffer and returns the HTML.
func (r *Renderer) Render(page string, data Data) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// HTML renders page and writes it with status. Nothing is written when
// rendering fails.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data Data) error {
	body, err := r.Render(page, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
