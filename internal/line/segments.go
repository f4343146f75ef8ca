package line

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SegmentType documents a segment's direction and picks its default speed.
type SegmentType string

const (
	Vertical   SegmentType = "vertical"
	Horizontal SegmentType = "horizontal"
)

// Default scroll multipliers when a segment does not set its own.
const (
	DefaultVerticalMultiplier   = 1.0
	DefaultHorizontalMultiplier = 8.0
)

// Segment is one directed edge of the configured line.
type Segment struct {
	From             string      `json:"from"`
	To               string      `json:"to"`
	Type             SegmentType `json:"type"`
	SectionNumber    int         `json:"sectionNumber"`
	ScrollMultiplier *float64    `json:"scrollMultiplier,omitempty"`
}

// Multiplier resolves the segment's scroll multiplier.
func (s Segment) Multiplier() float64 {
	if s.ScrollMultiplier != nil {
		return *s.ScrollMultiplier
	}
	if s.Type == Horizontal {
		return DefaultHorizontalMultiplier
	}
	return DefaultVerticalMultiplier
}

func multiplier(v float64) *float64 { return &v }

// DefaultSegments threads the line through the portfolio page: down the
// hero, across to the about card, down through the projects and over to the
// contact section.
func DefaultSegments() []Segment {
	return []Segment{
		{From: "hero-start", To: "hero-end", Type: Vertical, SectionNumber: 1},
		{From: "hero-end", To: "about-left", Type: Horizontal, SectionNumber: 1},
		{From: "about-left", To: "about-bottom", Type: Vertical, SectionNumber: 2},
		{From: "about-bottom", To: "projects-right", Type: Horizontal, SectionNumber: 2, ScrollMultiplier: multiplier(4)},
		{From: "projects-right", To: "projects-bottom", Type: Vertical, SectionNumber: 3, ScrollMultiplier: multiplier(1.5)},
		{From: "projects-bottom", To: "experience-center", Type: Horizontal, SectionNumber: 3},
		{From: "experience-center", To: "contact-center", Type: Vertical, SectionNumber: 4},
	}
}

// ValidateSegments checks a configuration once, at startup.
func ValidateSegments(segments []Segment) error {
	if len(segments) == 0 {
		return &ValidationError{Field: "segments", Message: "at least one segment is required", Err: ErrInvalidSegment}
	}
	for i, s := range segments {
		field := fmt.Sprintf("segments[%d]", i)
		if strings.TrimSpace(s.From) == "" {
			return &ValidationError{Field: field + ".from", Message: "must not be empty", Err: ErrInvalidSegment}
		}
		if strings.TrimSpace(s.To) == "" {
			return &ValidationError{Field: field + ".to", Message: "must not be empty", Err: ErrInvalidSegment}
		}
		if s.Type != Vertical && s.Type != Horizontal {
			return &ValidationError{Field: field + ".type", Message: fmt.Sprintf("must be %q or %q, got %q", Vertical, Horizontal, s.Type), Err: ErrInvalidSegment}
		}
		if s.ScrollMultiplier != nil && *s.ScrollMultiplier <= 0 {
			return &ValidationError{Field: field + ".scrollMultiplier", Message: "must be positive", Err: ErrInvalidSegment}
		}
	}
	return nil
}

// ParseSegments decodes and validates a JSON segment list.
func ParseSegments(data []byte) ([]Segment, error) {
	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse segments: %w", err)
	}
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// LoadSegments reads a segment file. An empty path yields DefaultSegments.
func LoadSegments(path string) ([]Segment, error) {
	if path == "" {
		return DefaultSegments(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segments file %q: %w", path, err)
	}
	return ParseSegments(data)
}
