package line

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in viewport space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SegmentData describes one drawn segment after normalization.
type SegmentData struct {
	From             Point       `json:"from"`
	To               Point       `json:"to"`
	Length           float64     `json:"length"`
	ScrollMultiplier float64     `json:"scrollMultiplier"`
	SectionNumber    int         `json:"sectionNumber"`
	Type             SegmentType `json:"type"`
}

// Path is the normalized polyline built from the registry.
type Path struct {
	D           string        `json:"pathString"`
	TotalLength float64       `json:"totalLength"`
	Segments    []SegmentData `json:"segmentData"`
	MinY        float64       `json:"minY"`
	MaxY        float64       `json:"maxY"`
	Points      []Point       `json:"points"`
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool {
	return len(p.Segments) == 0
}

// Build stitches the resolvable segments into one polyline scaled so the
// document range [minY, maxY] spans viewportHeight. Segments with a missing
// endpoint are skipped. Build does not modify its inputs.
func Build(anchors map[string]Anchor, segments []Segment, viewportHeight float64) Path {
	if len(anchors) == 0 {
		return Path{}
	}

	var (
		minY, maxY float64
		seen       bool
	)
	for _, s := range segments {
		from, okFrom := anchors[s.From]
		to, okTo := anchors[s.To]
		if !okFrom || !okTo {
			continue
		}
		for _, y := range [2]float64{float64(from.Y), float64(to.Y)} {
			if !seen {
				minY, maxY, seen = y, y, true
				continue
			}
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	scale := 1.0
	if maxY != minY {
		scale = viewportHeight / (maxY - minY)
	}
	normalize := func(a Anchor) Point {
		return Point{X: float64(a.X), Y: (float64(a.Y) - minY) * scale}
	}

	out := Path{MinY: minY, MaxY: maxY}
	var d strings.Builder
	for _, s := range segments {
		fromAnchor, okFrom := anchors[s.From]
		toAnchor, okTo := anchors[s.To]
		if !okFrom || !okTo {
			Logger().Debug("line: skipping segment with unregistered anchor",
				"from", s.From, "to", s.To, "hasFrom", okFrom, "hasTo", okTo)
			continue
		}
		from, to := normalize(fromAnchor), normalize(toAnchor)

		if len(out.Segments) == 0 {
			d.WriteString("M ")
			writePoint(&d, from)
			out.Points = append(out.Points, from)
		}
		d.WriteString(" L ")
		writePoint(&d, to)
		out.Points = append(out.Points, to)

		length := math.Hypot(to.X-from.X, to.Y-from.Y)
		out.TotalLength += length
		out.Segments = append(out.Segments, SegmentData{
			From:             from,
			To:               to,
			Length:           length,
			ScrollMultiplier: s.Multiplier(),
			SectionNumber:    s.SectionNumber,
			Type:             s.Type,
		})
	}
	out.D = d.String()
	return out
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
