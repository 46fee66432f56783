package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"advancedstats/chart"
)

const xlsxSheet = "Sheet1"

// XLSX exports the widget's dataset as a workbook with a native column chart
// that uses the same y axis bounds.
func XLSX(w io.Writer, widget *chart.Widget) error {
	if widget == nil {
		return chart.ErrNoSurface
	}
	cfg := widget.Config

	f := excelize.NewFile()
	defer f.Close()

	n := 0
	for _, s := range cfg.Data.Datasets {
		if len(s.Data) > n {
			n = len(s.Data)
		}
	}

	if err := f.SetCellValue(xlsxSheet, "A1", "Month"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, categoryLabel(cfg.Data.Labels, i)); err != nil {
			return err
		}
	}

	var series []excelize.ChartSeries
	for j, s := range cfg.Data.Datasets {
		col, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return err
		}
		name := s.Label
		if name == "" {
			name = fmt.Sprintf("Series %d", j+1)
		}
		if err := f.SetCellValue(xlsxSheet, col+"1", name); err != nil {
			return err
		}
		for i, v := range s.Data {
			if err := f.SetCellValue(xlsxSheet, fmt.Sprintf("%s%d", col, i+2), v); err != nil {
				return err
			}
		}

		color := s.BackgroundColor
		if color == "" {
			color = defaultColors[j%len(defaultColors)]
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", xlsxSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", xlsxSheet, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", xlsxSheet, col, col, n+1),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(color, "#")}},
		})
	}

	if n > 0 {
		yMin, yMax := 0.0, cfg.YMax()
		anchor, err := excelize.CoordinatesToCellName(len(cfg.Data.Datasets)+3, 2)
		if err != nil {
			return err
		}
		err = f.AddChart(xlsxSheet, anchor, &excelize.Chart{
			Type:   excelize.Col,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: seriesTitle(cfg.Data)}},
			Legend: excelize.ChartLegend{Position: cfg.Options.Plugins.Legend.Position},
			YAxis: excelize.ChartAxis{
				Minimum: &yMin,
				Maximum: &yMax,
			},
			Dimension: excelize.ChartDimension{Width: 640, Height: chart.ContainerHeightPx},
		})
		if err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
