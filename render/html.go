package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"advancedstats/chart"
)

//go:embed templates/*.html
var templateFS embed.FS

// ChartJSURL is where the page loads Chart.js from.
const ChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4"

var pageTemplate = template.Must(template.New("advanced_stats.html").ParseFS(templateFS, "templates/advanced_stats.html"))

// EventOption is one entry of the comparison select box.
type EventOption struct {
	Slug string
	Name string
}

// Page holds everything the advanced statistics page shows.
type Page struct {
	EventName    string
	Events       []EventOption
	SelectedSlug string
	HasOrders    bool
	DataChart    string
	Widget       *chart.Widget
}

type pageView struct {
	Page
	ChartJSURL     string
	ConfigJSON     template.JS
	ContainerStyle template.CSS
	Query          string
}

func HTML(w io.Writer, page Page) error {
	if page.Widget == nil {
		return chart.ErrNoSurface
	}

	configJSON, err := page.Widget.ConfigJSON()
	if err != nil {
		return err
	}

	view := pageView{
		Page:       page,
		ChartJSURL: ChartJSURL,
		// json.Marshal escapes <, > and &, so the config is safe inside a script element
		ConfigJSON:     template.JS(configJSON),
		ContainerStyle: template.CSS(page.Widget.Container.CSS()),
	}
	if page.SelectedSlug != "" {
		view.Query = "?" + url.Values{"comparing-event": {page.SelectedSlug}}.Encode()
	}

	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
