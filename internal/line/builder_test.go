package line

import (
	"math"
	"reflect"
	"testing"
)

func scenario() (map[string]Anchor, []Segment) {
	anchors := map[string]Anchor{
		"a": {ID: "a", X: 10, Y: 0},
		"b": {ID: "b", X: 10, Y: 100},
		"c": {ID: "c", X: 200, Y: 100},
	}
	segments := []Segment{
		{From: "a", To: "b", Type: Vertical, SectionNumber: 1},
		{From: "b", To: "c", Type: Horizontal, SectionNumber: 2},
	}
	return anchors, segments
}

func TestBuild_EndToEnd(t *testing.T) {
	anchors, segments := scenario()
	p := Build(anchors, segments, 100)

	if p.MinY != 0 || p.MaxY != 100 {
		t.Errorf("bounds = [%v, %v], want [0, 100]", p.MinY, p.MaxY)
	}
	if want := "M 10 0 L 10 100 L 200 100"; p.D != want {
		t.Errorf("path = %q, want %q", p.D, want)
	}
	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Segments))
	}
	if p.Segments[0].Length != 100 || p.Segments[1].Length != 190 {
		t.Errorf("lengths = [%v, %v], want [100, 190]", p.Segments[0].Length, p.Segments[1].Length)
	}
	if p.TotalLength != 290 {
		t.Errorf("total = %v, want 290", p.TotalLength)
	}
	if p.Segments[0].ScrollMultiplier != 1 || p.Segments[1].ScrollMultiplier != 8 {
		t.Errorf("multipliers = [%v, %v], want [1, 8]", p.Segments[0].ScrollMultiplier, p.Segments[1].ScrollMultiplier)
	}
	if p.Segments[1].SectionNumber != 2 || p.Segments[1].Type != Horizontal {
		t.Errorf("segment metadata lost: %+v", p.Segments[1])
	}
	wantPoints := []Point{{10, 0}, {10, 100}, {200, 100}}
	if !reflect.DeepEqual(p.Points, wantPoints) {
		t.Errorf("points = %v, want %v", p.Points, wantPoints)
	}
}

func TestBuild_ExplicitMultiplierWins(t *testing.T) {
	anchors, segments := scenario()
	segments[1].ScrollMultiplier = multiplier(2.5)

	p := Build(anchors, segments, 100)
	if p.Segments[1].ScrollMultiplier != 2.5 {
		t.Errorf("multiplier = %v, want 2.5", p.Segments[1].ScrollMultiplier)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	anchors, segments := scenario()
	first := Build(anchors, segments, 640)
	second := Build(anchors, segments, 640)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("builds differ:\n%+v\n%+v", first, second)
	}
	if len(anchors) != 3 || anchors["a"].Y != 0 {
		t.Error("Build mutated its input")
	}
}

func TestBuild_EmptyRegistry(t *testing.T) {
	_, segments := scenario()
	p := Build(nil, segments, 800)

	if p.D != "" || p.TotalLength != 0 || len(p.Segments) != 0 || !p.Empty() {
		t.Errorf("expected empty path, got %+v", p)
	}
}

func TestBuild_PartialRegistry(t *testing.T) {
	anchors := map[string]Anchor{
		"a": {ID: "a", X: 0, Y: 0},
		"b": {ID: "b", X: 0, Y: 50},
		"d": {ID: "d", X: 30, Y: 90},
		"e": {ID: "e", X: 30, Y: 100},
	}
	segments := []Segment{
		{From: "a", To: "b", Type: Vertical, SectionNumber: 1},
		{From: "b", To: "c", Type: Horizontal, SectionNumber: 2},
		{From: "x", To: "d", Type: Vertical, SectionNumber: 3},
		{From: "d", To: "e", Type: Vertical, SectionNumber: 4},
	}

	p := Build(anchors, segments, 100)
	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 resolvable segments, got %d", len(p.Segments))
	}
	if p.Segments[0].SectionNumber != 1 || p.Segments[1].SectionNumber != 4 {
		t.Errorf("segments out of order: %+v", p.Segments)
	}
	if p.MinY != 0 || p.MaxY != 100 {
		t.Errorf("bounds = [%v, %v], want [0, 100]", p.MinY, p.MaxY)
	}
	if want := "M 0 0 L 0 50 L 30 100"; p.D != want {
		t.Errorf("path = %q, want %q", p.D, want)
	}
}

func TestBuild_UnresolvedAnchorsDoNotWidenBounds(t *testing.T) {
	anchors := map[string]Anchor{
		"a":     {ID: "a", X: 0, Y: 100},
		"b":     {ID: "b", X: 0, Y: 200},
		"loose": {ID: "loose", X: 0, Y: 5000},
	}
	segments := []Segment{
		{From: "a", To: "b", Type: Vertical},
		{From: "loose", To: "missing", Type: Vertical},
	}

	p := Build(anchors, segments, 100)
	if p.MinY != 100 || p.MaxY != 200 {
		t.Errorf("bounds = [%v, %v], want [100, 200]", p.MinY, p.MaxY)
	}
}

func TestBuild_Normalization(t *testing.T) {
	anchors := map[string]Anchor{
		"top":    {ID: "top", X: 40, Y: 100},
		"bottom": {ID: "bottom", X: 40, Y: 500},
	}
	segments := []Segment{{From: "top", To: "bottom", Type: Vertical}}

	p := Build(anchors, segments, 800)
	s := p.Segments[0]
	if s.From.Y != 0 || s.To.Y != 800 {
		t.Errorf("normalized ys = (%v, %v), want (0, 800)", s.From.Y, s.To.Y)
	}
	if s.From.X != 40 || s.To.X != 40 {
		t.Errorf("x must not be normalized, got (%v, %v)", s.From.X, s.To.X)
	}
	if s.Length != 800 {
		t.Errorf("length = %v, want 800", s.Length)
	}
}

func TestBuild_DegenerateRange(t *testing.T) {
	anchors := map[string]Anchor{
		"a": {ID: "a", X: 0, Y: 50},
		"b": {ID: "b", X: 120, Y: 50},
		"c": {ID: "c", X: 200, Y: 50},
	}
	segments := []Segment{
		{From: "a", To: "b", Type: Horizontal},
		{From: "b", To: "c", Type: Horizontal},
	}

	p := Build(anchors, segments, 900)
	if math.IsNaN(p.TotalLength) || math.IsInf(p.TotalLength, 0) {
		t.Fatalf("total length not finite: %v", p.TotalLength)
	}
	if p.TotalLength != 200 {
		t.Errorf("total = %v, want 200", p.TotalLength)
	}
	if want := "M 0 0 L 120 0 L 200 0"; p.D != want {
		t.Errorf("path = %q, want %q", p.D, want)
	}
}

func TestDefaultSegments_Valid(t *testing.T) {
	if err := ValidateSegments(DefaultSegments()); err != nil {
		t.Fatalf("default segments invalid: %v", err)
	}
}
