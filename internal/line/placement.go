package line

import (
	"fmt"
	"math"
	"strings"
)

// Align selects which viewport edge an anchor's horizontal offset is
// measured from.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// MaxCoordinate bounds accepted coordinates, far beyond any real page.
const MaxCoordinate = 1e7

// CheckCoordinate rejects values that cannot be stored as whole pixels.
func CheckCoordinate(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Message: "must be finite", Err: ErrInvalidCoordinate}
	}
	if math.Abs(v) > MaxCoordinate {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be within ±%g", float64(MaxCoordinate)), Err: ErrInvalidCoordinate}
	}
	return nil
}

// Measurement is what a page element reports about itself. Top is the
// element's top edge relative to the viewport.
type Measurement struct {
	ID            string  `json:"id"`
	Align         Align   `json:"align"`
	Offset        float64 `json:"offset"`
	Top           float64 `json:"top"`
	ScrollY       float64 `json:"scrollY"`
	Adjust        float64 `json:"adjust"`
	ViewportWidth float64 `json:"viewportWidth"`
}

// X is relative to the viewport, never to the element's container.
func (m Measurement) X() float64 {
	switch m.Align {
	case AlignRight:
		return m.ViewportWidth - m.Offset
	case AlignCenter:
		return m.ViewportWidth/2 + m.Offset
	default:
		return m.Offset
	}
}

// Y is relative to the document.
func (m Measurement) Y() float64 {
	return m.Top + m.ScrollY + m.Adjust
}

// Validate rejects measurements that cannot produce a coordinate.
func (m Measurement) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return &ValidationError{Field: "id", Message: "must not be empty"}
	}
	switch m.Align {
	case "", AlignLeft, AlignRight, AlignCenter:
	default:
		return &ValidationError{Field: "align", Message: fmt.Sprintf("unknown alignment %q", m.Align)}
	}
	if m.ViewportWidth < 0 {
		return &ValidationError{Field: "viewportWidth", Message: "must not be negative", Err: ErrInvalidCoordinate}
	}
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"offset", m.Offset},
		{"top", m.Top},
		{"scrollY", m.ScrollY},
		{"adjust", m.Adjust},
		{"viewportWidth", m.ViewportWidth},
		{"x", m.X()},
		{"y", m.Y()},
	} {
		if err := CheckCoordinate(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}
