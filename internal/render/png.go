package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/Zachkp/portfolio/internal/line"
)

// PNG rasterizes the same picture as SVG.
func PNG(w io.Writer, p line.Path, rv line.RevealState, opts Options) error {
	opts = opts.withDefaults(p)

	dc := gg.NewContext(opts.Width, opts.Height)
	if opts.Background != "" {
		dc.SetHexColor(opts.Background)
		dc.Clear()
	}

	if !p.Empty() {
		dc.SetLineWidth(opts.StrokeWidth)
		dc.SetLineCap(gg.LineCapRound)

		dc.SetHexColor(opts.Track)
		for _, s := range p.Segments {
			dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
			dc.Stroke()
		}

		dc.SetHexColor(opts.Stroke)
		for i, s := range p.Segments {
			if i > rv.Segment {
				break
			}
			to := s.To
			if i == rv.Segment {
				to = rv.Tip
			}
			dc.DrawLine(s.From.X, s.From.Y, to.X, to.Y)
			dc.Stroke()
		}

		dc.DrawCircle(rv.Tip.X, rv.Tip.Y, opts.TipRadius)
		dc.Fill()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
