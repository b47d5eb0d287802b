package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed terms/*.md
var termsFS embed.FS

// Terms documents.
const (
	TermsGeneral = "general"
	TermsUser    = "user"
	TermsCourier = "courier"
)

var termsTitles = map[string]string{
	TermsGeneral: "Terms and Conditions",
	TermsUser:    "User Terms of Service",
	TermsCourier: "Courier Partner Terms",
}

// Raw HTML in the markdown is escaped: WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

// TermsPage is the template model of a terms page.
type TermsPage struct {
	Name  string
	Title string
	HTML  template.HTML
}

var (
	termsOnce  sync.Once
	termsCache map[string]TermsPage
	termsErr   error
)

// Terms returns the rendered terms document name.
func Terms(name string) (TermsPage, bool, error) {
	termsOnce.Do(func() {
		termsCache, termsErr = renderTerms()
	})
	if termsErr != nil {
		return TermsPage{}, false, termsErr
	}
	p, ok := termsCache[name]
	return p, ok, nil
}

func renderTerms() (map[string]TermsPage, error) {
	out := make(map[string]TermsPage, len(termsTitles))
	for name, title := range termsTitles {
		src, err := termsFS.ReadFile("terms/" + name + ".md")
		if err != nil {
			return nil, fmt.Errorf("read terms %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("convert terms %s: %w", name, err)
		}
		out[name] = TermsPage{Name: name, Title: title, HTML: template.HTML(buf.String())}
	}
	return out, nil
}
