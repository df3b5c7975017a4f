package cloud

import (
	"math"
	"testing"
)

func TestEstimateCanvas(t *testing.T) {
	tests := []struct {
		name                  string
		area, ratio, padding  float64
		wantWidth, wantHeight float64
	}{
		{"square no padding", 100, 1, 0, 10, 10},
		{"square padded", 100, 1, 30, 40, 40},
		{"wide", 400, 4, 10, 80, 20},
		{"empty", 0, 16.0 / 9, 30, 30 * 16.0 / 9, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := EstimateCanvas(tt.area, tt.ratio, tt.padding)
			if math.Abs(c.Width-tt.wantWidth) > 1e-9 || math.Abs(c.Height-tt.wantHeight) > 1e-9 {
				t.Errorf("EstimateCanvas() = %vx%v, want %vx%v", c.Width, c.Height, tt.wantWidth, tt.wantHeight)
			}
			if c.AspectRatio != tt.ratio {
				t.Errorf("AspectRatio = %v, want %v", c.AspectRatio, tt.ratio)
			}
		})
	}
}

func TestEstimateCanvasCoversArea(t *testing.T) {
	for _, area := range []float64{1, 50, 1234.5, 1e6} {
		c := EstimateCanvas(area, 16.0/9, DefaultCanvasPadding)
		if c.Area() < area {
			t.Errorf("canvas area %v smaller than content area %v", c.Area(), area)
		}
	}
}

func TestTotalArea(t *testing.T) {
	tokens := []SizedToken{{Width: 10, Height: 2}, {Width: 3, Height: 3}}
	if got := TotalArea(tokens); got != 29 {
		t.Errorf("TotalArea() = %v, want 29", got)
	}
}

func TestCanvasForFixed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 800, 400

	c := canvasFor([]SizedToken{{Width: 1000, Height: 1000}}, cfg)
	if c.Width != 800 || c.Height != 400 || c.AspectRatio != 2 {
		t.Errorf("canvasFor() = %+v, want fixed 800x400", c)
	}
}
