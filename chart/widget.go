package chart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultSurface is the id of the canvas that carries the data-chart attribute.
const DefaultSurface = "bar-chart"

var ErrNoSurface = errors.New("no rendering surface")

// Style is the size applied to the element wrapping the canvas.
type Style struct {
	Height string
	Width  string
}

func (s Style) CSS() string {
	return fmt.Sprintf("height: %s; width: %s;", s.Height, s.Width)
}

// Widget is a configuration bound to a surface, ready for a renderer.
type Widget struct {
	SurfaceID string
	Config    Config
	Container Style
}

// ContainerHeightPx is the fixed pixel height of the chart container.
const ContainerHeightPx = 500

func Render(surfaceID string, cfg Config) (*Widget, error) {
	if surfaceID == "" {
		return nil, ErrNoSurface
	}
	return &Widget{
		SurfaceID: surfaceID,
		Config:    cfg,
		Container: Style{
			Height: fmt.Sprintf("%dpx", ContainerHeightPx),
			Width:  "100%",
		},
	}, nil
}

// ConfigJSON returns the configuration as handed to Chart.js.
func (w *Widget) ConfigJSON() (string, error) {
	b, err := json.Marshal(w.Config)
	if err != nil {
		return "", fmt.Errorf("encode chart config: %w", err)
	}
	return string(b), nil
}
