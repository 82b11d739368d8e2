// Package web renders the dashboard HTML page.
package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateName is the name of the dashboard page template.
const TemplateName = "dashboard"

// PlotlyURL is the plotly.js bundle the page loads for interactive figures.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// DefaultTitle is the page heading.
const DefaultTitle = "Import/Export Trade Dashboard"

// DefaultPreviewRows bounds the transactions table rendered inline.
const DefaultPreviewRows = 1000

// Page is the data of one dashboard page.
type Page struct {
	Title       string
	PlotlyURL   string
	Error       string
	Detail      string
	Source      string
	BuiltAt     string
	Rows        int
	PreviewRows int
	TableURL    string
	Preview     Rows
	SampleSize  int
	Sample      Rows
	Charts      []Chart
}

// Rows is a header plus raw rows.
type Rows struct {
	Header []string
	Rows   [][]string
}

// Chart is one chart section. Figure holds Plotly JSON; otherwise URL points
// at the PNG.
type Chart struct {
	ID     string
	Title  string
	URL    string
	Figure template.JS
}

// Template parses the embedded page templates.
func Template() *template.Template {
	return template.Must(template.New("web").ParseFS(templateFS, "templates/*.tmpl"))
}

// URLFunc maps an image artifact to the URL the page loads it from.
type URLFunc func(a models.Artifact) string

// NewPage builds the page for a dashboard. previewRows bounds the inline
// transactions table; the sample is always shown in full.
func NewPage(d *models.Dashboard, urlFor URLFunc, previewRows int, tableURL string) Page {
	p := Page{
		Title:       DefaultTitle,
		PlotlyURL:   PlotlyURL,
		Source:      d.Table.Source,
		BuiltAt:     d.BuiltAt.UTC().Format(time.RFC3339),
		Rows:        d.Table.Len(),
		PreviewRows: previewRows,
		TableURL:    tableURL,
		Preview:     Rows{Header: d.Table.Header, Rows: d.Table.Page(0, previewRows)},
		SampleSize:  d.Sample.Len(),
		Sample:      Rows{Header: d.Sample.Header, Rows: d.Sample.Records},
	}
	for _, a := range d.Charts {
		c := Chart{ID: a.ID, Title: a.Title}
		if a.Kind == models.KindFigure {
			c.Figure = template.JS(a.Data)
		} else {
			c.URL = urlFor(a)
		}
		p.Charts = append(p.Charts, c)
	}
	return p
}

// ErrorPage builds a page that shows only an error.
func ErrorPage(message string, err error) Page {
	p := Page{Title: DefaultTitle, PlotlyURL: PlotlyURL, Error: message}
	if err != nil {
		p.Detail = err.Error()
	}
	return p
}

var pageTemplate = Template()

// Render writes the page as HTML.
func Render(w io.Writer, p Page) error {
	return pageTemplate.ExecuteTemplate(w, TemplateName, p)
}
