package line

// RevealState says how much of a path is stroked for a given progress.
type RevealState struct {
	Progress        float64 `json:"progress"`
	DrawnLength     float64 `json:"drawnLength"`
	DashOffset      float64 `json:"dashOffset"`
	Segment         int     `json:"segment"`
	SegmentFraction float64 `json:"segmentFraction"`
	Tip             Point   `json:"tip"`
}

// Reveal maps draw progress onto the path. Progress is spread over the
// effective length of each segment, its length times its scroll multiplier,
// so a segment with multiplier 8 takes eight times as much progress per
// pixel as one with multiplier 1. Segment is -1 for an empty path.
func Reveal(progress float64, p Path) RevealState {
	progress = clamp01(progress)
	out := RevealState{Progress: progress, Segment: -1, DashOffset: p.TotalLength}
	if p.Empty() {
		return out
	}

	var effectiveTotal float64
	for _, s := range p.Segments {
		effectiveTotal += s.Length * s.ScrollMultiplier
	}

	out.Tip = p.Segments[0].From
	if effectiveTotal <= 0 {
		// Zero-length path, nothing to stroke but the start point.
		out.Segment = 0
		return out
	}

	target := progress * effectiveTotal
	var walked, drawn float64
	for i, s := range p.Segments {
		eff := s.Length * s.ScrollMultiplier
		last := i == len(p.Segments)-1
		if target <= walked+eff || last {
			frac := 0.0
			if eff > 0 {
				frac = clamp01((target - walked) / eff)
			}
			out.Segment = i
			out.SegmentFraction = frac
			out.DrawnLength = drawn + s.Length*frac
			out.Tip = Point{
				X: s.From.X + (s.To.X-s.From.X)*frac,
				Y: s.From.Y + (s.To.Y-s.From.Y)*frac,
			}
			break
		}
		walked += eff
		drawn += s.Length
	}
	out.DashOffset = p.TotalLength - out.DrawnLength
	return out
}
