// Package render paints a built line path at a given draw progress.
package render

import (
	"math"

	"github.com/Zachkp/portfolio/internal/line"
)

// Options controls how the line is painted. Zero values fall back to the
// site's defaults.
type Options struct {
	Width       int
	Height      int
	Stroke      string
	Track       string
	Background  string
	StrokeWidth float64
	TipRadius   float64
	Padding     float64
}

const (
	defaultStroke      = "#f97316"
	defaultTrack       = "#e5e7eb"
	defaultStrokeWidth = 2
	defaultTipRadius   = 6
	defaultPadding     = 16
)

func (o Options) withDefaults(p line.Path) Options {
	if o.Stroke == "" {
		o.Stroke = defaultStroke
	}
	if o.Track == "" {
		o.Track = defaultTrack
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = defaultStrokeWidth
	}
	if o.TipRadius <= 0 {
		o.TipRadius = defaultTipRadius
	}
	if o.Padding <= 0 {
		o.Padding = defaultPadding
	}

	// Size to the path when the caller does not say.
	var maxX, maxY float64
	for _, pt := range p.Points {
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	if o.Width <= 0 {
		o.Width = int(math.Ceil(maxX + o.Padding))
	}
	if o.Height <= 0 {
		o.Height = int(math.Ceil(maxY + o.Padding))
	}
	if o.Width <= 0 {
		o.Width = 1
	}
	if o.Height <= 0 {
		o.Height = 1
	}
	return o
}
