package cloud

import "math"

// TotalArea returns the summed rectangle area of tokens.
func TotalArea(tokens []SizedToken) float64 {
	area := 0.0
	for _, t := range tokens {
		area += t.Width * t.Height
	}
	return area
}

// EstimateCanvas sizes a canvas that roughly fits area at the given aspect
// ratio (width / height), with padding added as slack:
//
//	width  = sqrt(area * ratio) + padding * ratio
//	height = sqrt(area / ratio) + padding
//
// The estimate does not guarantee that every rectangle finds room; placement
// reports the ones that do not.
func EstimateCanvas(area, ratio, padding float64) Canvas {
	area = max(area, 0)
	return Canvas{
		Width:       math.Sqrt(area*ratio) + padding*ratio,
		Height:      math.Sqrt(area/ratio) + padding,
		AspectRatio: ratio,
	}
}

// canvasFor returns the fixed canvas from cfg, or an estimate for tokens.
func canvasFor(tokens []SizedToken, cfg Config) Canvas {
	if cfg.FixedCanvas() {
		return Canvas{
			Width:       cfg.CanvasWidth,
			Height:      cfg.CanvasHeight,
			AspectRatio: cfg.CanvasWidth / cfg.CanvasHeight,
		}
	}
	return EstimateCanvas(TotalArea(tokens), cfg.AspectRatio(), cfg.Padding)
}
