package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"advancedstats/chart"
)

const (
	pngBarWidth   = 24
	pngBarSpacing = 6
	pngMinWidth   = 640
	pngMaxTicks   = 10
)

// defaultColors are used for series without a backgroundColor.
var defaultColors = []string{"#50A167", "#3C1C4A"}

// PNG draws the widget's chart as a bitmap.
func PNG(w io.Writer, widget *chart.Widget) error {
	if widget == nil {
		return chart.ErrNoSurface
	}
	cfg := widget.Config

	bars := pngBars(cfg.Data)
	if len(bars) == 0 {
		return chart.ErrEmptySeries
	}

	width := len(bars)*(pngBarWidth+pngBarSpacing) + 120
	if width < pngMinWidth {
		width = pngMinWidth
	}

	format := chart.TickLabel
	if t := cfg.Options.Scales.Y.Ticks; t != nil && t.Format != nil {
		format = t.Format
	}
	ceiling := cfg.YMax()

	graph := gochart.BarChart{
		Title:  seriesTitle(cfg.Data),
		Width:  width,
		Height: chart.ContainerHeightPx,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    40,
				Left:   cfg.Options.Layout.Padding,
				Right:  cfg.Options.Layout.Padding,
				Bottom: cfg.Options.Layout.Padding,
			},
		},
		BarWidth:   pngBarWidth,
		BarSpacing: pngBarSpacing,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{
				Min: 0,
				Max: ceiling,
			},
			Ticks: yTicks(ceiling, format),
		},
		Bars: bars,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

// pngBars interleaves the series so the bars of one label sit next to each other.
func pngBars(ds chart.Dataset) []gochart.Value {
	n := 0
	for _, s := range ds.Datasets {
		if len(s.Data) > n {
			n = len(s.Data)
		}
	}

	var bars []gochart.Value
	for i := 0; i < n; i++ {
		for j, s := range ds.Datasets {
			if i >= len(s.Data) {
				continue
			}
			label := ""
			if j == 0 {
				label = categoryLabel(ds.Labels, i)
				if len(label) > 3 {
					label = label[:3]
				}
			}
			bars = append(bars, gochart.Value{
				Label: label,
				Value: s.Data[i],
				Style: gochart.Style{
					FillColor:   seriesColor(s, j),
					StrokeColor: seriesColor(s, j),
				},
			})
		}
	}
	return bars
}

// yTicks spaces integer ticks so at most pngMaxTicks are drawn and ends on the ceiling.
func yTicks(ceiling float64, format func(float64) string) []gochart.Tick {
	step := 1.0
	if ceiling > pngMaxTicks {
		step = math.Ceil(ceiling / pngMaxTicks)
	}

	var ticks []gochart.Tick
	for v := 0.0; v < ceiling; v += step {
		ticks = append(ticks, gochart.Tick{Value: v, Label: format(v)})
	}
	return append(ticks, gochart.Tick{Value: ceiling, Label: format(ceiling)})
}

func categoryLabel(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return strconv.Itoa(i + 1)
}

func seriesColor(s chart.Series, i int) drawing.Color {
	hex := s.BackgroundColor
	if hex == "" {
		hex = defaultColors[i%len(defaultColors)]
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func seriesTitle(ds chart.Dataset) string {
	var names []string
	for _, s := range ds.Datasets {
		if s.Label != "" {
			names = append(names, s.Label)
		}
	}
	return strings.Join(names, " vs ")
}
