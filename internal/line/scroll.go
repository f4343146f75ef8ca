package line

import "math"

// ZoneFraction is the share of one viewport height reserved for the intro
// and the outro zones.
const ZoneFraction = 0.3

// Tip positions, as fractions of viewport height, at the zone boundaries.
const (
	tipIntroEnd  = 0.3
	tipOutroFrom = 0.7
)

// Zone names the scroll regime a position falls in.
type Zone string

const (
	ZoneNone   Zone = "none"
	ZoneIntro  Zone = "intro"
	ZoneNormal Zone = "normal"
	ZoneOutro  Zone = "outro"
)

// ScrollState is the raw input from a scroll or resize. DocumentHeight is
// the natural content height, without the extra outro room.
type ScrollState struct {
	ScrollY        float64 `json:"scrollY"`
	DocumentHeight float64 `json:"documentHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// Progress is the mapper's output.
type Progress struct {
	ScrollY             float64 `json:"scrollY"`
	Progress            float64 `json:"progress"`
	TipViewportPosition float64 `json:"tipViewportPosition"`
	Zone                Zone    `json:"zone"`
}

// ExtraScrollHeight is the room a page must append below its content so
// the outro zone can be scrolled through.
func ExtraScrollHeight(viewportHeight float64) float64 {
	return viewportHeight * ZoneFraction
}

// MapScroll converts a scroll offset into draw progress and the tip's
// position within the viewport.
func MapScroll(s ScrollState) Progress {
	out := Progress{ScrollY: s.ScrollY, Zone: ZoneNone}
	if s.ViewportHeight <= 0 || s.DocumentHeight <= s.ViewportHeight {
		return out
	}

	naturalMax := s.DocumentHeight - s.ViewportHeight
	zone := s.ViewportHeight * ZoneFraction

	out.Progress = clamp01(s.ScrollY / (naturalMax + zone))

	switch {
	case s.ScrollY < zone && s.ScrollY < naturalMax:
		out.Zone = ZoneIntro
		out.TipViewportPosition = tipIntroEnd * s.ScrollY / zone
	case s.ScrollY < naturalMax:
		out.Zone = ZoneNormal
		out.TipViewportPosition = tipIntroEnd + (tipOutroFrom-tipIntroEnd)*(s.ScrollY-zone)/(naturalMax-zone)
	default:
		out.Zone = ZoneOutro
		out.TipViewportPosition = tipOutroFrom + (1-tipOutroFrom)*(s.ScrollY-naturalMax)/zone
	}
	out.TipViewportPosition = clamp01(out.TipViewportPosition)
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
