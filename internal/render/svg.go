package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Zachkp/portfolio/internal/line"
)

// SVG writes the path as an SVG document. The whole path is laid down as a
// faint track and the revealed part is drawn over it with a stroke dash, the
// same way the page animates it, with a circle marking the tip.
func SVG(w io.Writer, p line.Path, rv line.RevealState, opts Options) error {
	opts = opts.withDefaults(p)

	var svg bytes.Buffer
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	if opts.Background != "" {
		fmt.Fprintf(&svg, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(opts.Background))
	}

	if !p.Empty() {
		fmt.Fprintf(&svg, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
			p.D, escapeXML(opts.Track), opts.StrokeWidth)
		fmt.Fprintf(&svg, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-dasharray="%.2f" stroke-dashoffset="%.2f"/>`+"\n",
			p.D, escapeXML(opts.Stroke), opts.StrokeWidth, p.TotalLength, rv.DashOffset)
		fmt.Fprintf(&svg, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			rv.Tip.X, rv.Tip.Y, opts.TipRadius, escapeXML(opts.Stroke))
	}
	svg.WriteString("</svg>\n")

	if _, err := w.Write(svg.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
