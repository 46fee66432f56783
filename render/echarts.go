package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"advancedstats/chart"
)

// ECharts writes a standalone interactive page for the widget using Apache ECharts.
func ECharts(w io.Writer, widget *chart.Widget) error {
	if widget == nil {
		return chart.ErrNoSurface
	}
	cfg := widget.Config

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Advanced Stats",
			ChartID:   widget.SurfaceID,
			Width:     widget.Container.Width,
			Height:    widget.Container.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: seriesTitle(cfg.Data)}),
		charts.WithLegendOpts(opts.Legend{Top: cfg.Options.Plugins.Legend.Position}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: cfg.Options.Scales.Y.Title.Text,
			Min:  0,
			Max:  cfg.YMax(),
		}),
	)

	n := 0
	for _, s := range cfg.Data.Datasets {
		if len(s.Data) > n {
			n = len(s.Data)
		}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = categoryLabel(cfg.Data.Labels, i)
	}
	bar.SetXAxis(labels)

	for i, s := range cfg.Data.Datasets {
		items := make([]opts.BarData, 0, len(s.Data))
		for _, v := range s.Data {
			items = append(items, opts.BarData{Value: v})
		}
		color := s.BackgroundColor
		if color == "" {
			color = defaultColors[i%len(defaultColors)]
		}
		bar.AddSeries(s.Label, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render echarts: %w", err)
	}
	return nil
}
