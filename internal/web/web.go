// Package web renders the public marketing pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/affordablebilliards/billiards_api/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome      = "home"
	PageInventory = "inventory"
	PageTable     = "table"
	PageSold      = "sold"
	PageRFQ       = "rfq"
	PageReviews   = "reviews"
	PageBlog      = "blog"
	PagePost      = "post"
	PageServices  = "services"
	PageAbout     = "about"
	PageNotFound  = "notfound"
)

var pageNames = []string{
	PageHome, PageInventory, PageTable, PageSold, PageRFQ, PageReviews,
	PageBlog, PagePost, PageServices, PageAbout, PageNotFound,
}

// Page is the data passed to every template.
type Page struct {
	Title  string
	Active string
	Site   config.SiteConfig
	Data   interface{}
}

// Renderer holds one parsed template set per page, each combined with the
// shared layout.
type Renderer struct {
	site  config.SiteConfig
	pages map[string]*template.Template
}

func New(site config.SiteConfig) (*Renderer, error) {
	r := &Renderer{site: site, pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(Funcs()).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page. The page is rendered to a buffer first so a
// template error never produces a half-written response.
func (r *Renderer) Render(w io.Writer, name, title string, data interface{}) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	page := Page{Title: title, Active: name, Site: r.site, Data: data}
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Funcs returns the template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": Money,
		"date":  Date,
		"stars": Stars,
		"tel":   Tel,
	}
}

// Money formats whole dollars with thousands separators, e.g. $2,199.
func Money(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// Date renders an ISO timestamp as "January 2, 2006". Unparseable input is
// returned unchanged.
func Date(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return iso
}

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Tel strips a display phone number down to a tel: link target.
func Tel(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return "tel:" + b.String()
}
