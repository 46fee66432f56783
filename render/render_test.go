package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"advancedstats/chart"
)

const comparison = `{"labels":["October","November","December"],"datasets":[` +
	`{"label":"Fest 2024","data":[3,7,2],"backgroundColor":"#50A167"},` +
	`{"label":"Fest 2023","data":[1,5,9],"backgroundColor":"#3C1C4A"}]}`

func testWidget(t *testing.T, raw string) *chart.Widget {
	t.Helper()
	cfg, err := chart.Configure(raw)
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	w, err := chart.Render(chart.DefaultSurface, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return w
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Page{
		EventName:    "Fest 2024",
		Events:       []EventOption{{Slug: "fest-2023", Name: "Fest 2023"}},
		SelectedSlug: "fest-2023",
		HasOrders:    true,
		DataChart:    comparison,
		Widget:       testWidget(t, comparison),
	})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`id="bar-chart"`,
		`data-chart="{&#34;labels&#34;`,
		`Number.isInteger(value)`,
		`<option value="fest-2023" selected>Fest 2023</option>`,
		`"500px"`,
		`"100%"`,
		`chart.png?comparing-event=fest-2023`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestHTMLWithoutOrders(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Page{EventName: "Fest", Widget: testWidget(t, `{"datasets":[{"data":[]}]}`)})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if strings.Contains(buf.String(), "<canvas") {
		t.Errorf("Expected no canvas for an event without orders")
	}
}

func TestHTMLWithoutWidget(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, Page{}); err != chart.ErrNoSurface {
		t.Fatalf("Expected ErrNoSurface, got %v", err)
	}
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, testWidget(t, comparison)); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("Expected PNG signature")
	}
}

func TestPNGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, testWidget(t, `{"datasets":[{"data":[]}]}`)); err != chart.ErrEmptySeries {
		t.Fatalf("Expected ErrEmptySeries, got %v", err)
	}
}

func TestYTicks(t *testing.T) {
	ticks := yTicks(6.6, chart.TickLabel)
	if len(ticks) != 8 {
		t.Fatalf("Expected 8 ticks, got %d", len(ticks))
	}
	if ticks[2].Label != "2" {
		t.Errorf("Expected label 2, got %q", ticks[2].Label)
	}
	last := ticks[len(ticks)-1]
	if last.Value != 6.6 || last.Label != "" {
		t.Errorf("Expected blank ceiling tick, got %+v", last)
	}

	ticks = yTicks(110, chart.TickLabel)
	if len(ticks) > 12 {
		t.Errorf("Expected ticks to be thinned out, got %d", len(ticks))
	}
}

func TestECharts(t *testing.T) {
	var buf bytes.Buffer
	if err := ECharts(&buf, testWidget(t, comparison)); err != nil {
		t.Fatalf("ECharts failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Fest 2023") || !strings.Contains(out, "echarts") {
		t.Errorf("Unexpected echarts page")
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := XLSX(&buf, testWidget(t, comparison)); err != nil {
		t.Fatalf("XLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0][2] != "Fest 2023" || rows[3][0] != "December" || rows[3][2] != "9" {
		t.Errorf("Unexpected rows: %v", rows)
	}
}
