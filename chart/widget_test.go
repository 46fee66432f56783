package chart

import (
	"errors"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	cfg, err := Configure(`{"datasets":[{"data":[1,2,3]},{"data":[4,5,6]}]}`)
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	w, err := Render(DefaultSurface, cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if w.Container.Height != "500px" || w.Container.Width != "100%" {
		t.Errorf("Unexpected container style: %+v", w.Container)
	}
	if w.Container.CSS() != "height: 500px; width: 100%;" {
		t.Errorf("Unexpected CSS: %s", w.Container.CSS())
	}

	js, err := w.ConfigJSON()
	if err != nil {
		t.Fatalf("ConfigJSON failed: %v", err)
	}
	if !strings.Contains(js, `"type":"bar"`) || !strings.Contains(js, `"position":"top"`) {
		t.Errorf("Unexpected config JSON: %s", js)
	}
}

func TestRenderWithoutSurface(t *testing.T) {
	if _, err := Render("", Config{}); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("Expected ErrNoSurface, got %v", err)
	}
}
