package chart

import (
	"errors"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

const (
	TypeBar = "bar"

	// PaddingRatio is the share of the maximum added above it on the y axis.
	PaddingRatio = 0.1
	// DefaultCeiling is used when there is nothing to plot.
	DefaultCeiling = 1.0

	LegendTop     = "top"
	LayoutPadding = 5
	YAxisTitle    = "Nr. of tickets"
)

// Config mirrors the Chart.js configuration object.
type Config struct {
	Type    string  `json:"type"`
	Data    Dataset `json:"data"`
	Options Options `json:"options"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Scales              Scales  `json:"scales"`
	Plugins             Plugins `json:"plugins"`
	Layout              Layout  `json:"layout"`
}

type Scales struct {
	X Scale `json:"x"`
	Y Scale `json:"y"`
}

type Scale struct {
	BeginAtZero bool       `json:"beginAtZero"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Title       ScaleTitle `json:"title"`
	Ticks       *Ticks     `json:"ticks,omitempty"`
}

type ScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

// Ticks holds the tick settings. Format is applied by renderers and
// is re-expressed as a callback on the client side.
type Ticks struct {
	StepSize float64              `json:"stepSize"`
	Format   func(float64) string `json:"-"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Position string `json:"position"`
}

type Layout struct {
	Padding int `json:"padding"`
}

// ComputeMaxValue returns the largest value of the first two series.
func ComputeMaxValue(ds Dataset) (float64, error) {
	values := ds.Values()
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	return floats.Max(values), nil
}

func ComputePadding(max float64) float64 {
	return max * PaddingRatio
}

// Ceiling returns the y axis upper bound: max plus padding, or max+1 when the
// padding does not lift it (max <= 0). It is strictly above every finite max
// except math.MaxFloat64, which has no finite value above it and is returned as is.
func Ceiling(max, padding float64) float64 {
	if c := max + padding; c > max && !math.IsInf(c, 0) {
		return c
	}
	if c := max + 1; c > max {
		return c
	}
	// |max| >= 2^53, where max+1 rounds back to max
	if c := math.Nextafter(max, math.Inf(1)); !math.IsInf(c, 0) {
		return c
	}
	return max
}

// TickLabel renders integer tick values and blanks everything else.
func TickLabel(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func BuildConfig(ds Dataset, max, padding float64) Config {
	return build(ds, Ceiling(max, padding))
}

func build(ds Dataset, ceiling float64) Config {
	return Config{
		Type: TypeBar,
		Data: ds,
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			Scales: Scales{
				X: Scale{
					BeginAtZero: true,
					Min:         float64Ptr(0),
					Title:       ScaleTitle{Display: true},
				},
				Y: Scale{
					BeginAtZero: true,
					Min:         float64Ptr(0),
					Max:         float64Ptr(ceiling),
					Title:       ScaleTitle{Display: true, Text: YAxisTitle},
					Ticks:       &Ticks{StepSize: 1, Format: TickLabel},
				},
			},
			Plugins: Plugins{Legend: Legend{Position: LegendTop}},
			Layout:  Layout{Padding: LayoutPadding},
		},
	}
}

// Configure runs the whole pipeline on a raw data-chart payload. Nothing
// is built when the payload does not parse.
func Configure(raw string) (Config, error) {
	ds, err := ParseDataset(raw)
	if err != nil {
		return Config{}, err
	}
	return ConfigureDataset(ds), nil
}

// ConfigureDataset builds the configuration for an already decoded dataset.
// Empty series get DefaultCeiling instead of an invalid bound.
func ConfigureDataset(ds Dataset) Config {
	max, err := ComputeMaxValue(ds)
	if errors.Is(err, ErrEmptySeries) {
		return build(ds, DefaultCeiling)
	}
	return BuildConfig(ds, max, ComputePadding(max))
}

// YMax returns the configured y axis ceiling.
func (c Config) YMax() float64 {
	if c.Options.Scales.Y.Max == nil {
		return DefaultCeiling
	}
	return *c.Options.Scales.Y.Max
}

func float64Ptr(f float64) *float64 {
	return &f
}
