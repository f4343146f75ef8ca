package line

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapScroll_ZoneBoundaries(t *testing.T) {
	tests := []struct {
		scrollY  float64
		wantTip  float64
		wantZone Zone
	}{
		{0, 0, ZoneIntro},
		{150, 0.15, ZoneIntro},
		{300, 0.3, ZoneNormal},
		{1150, 0.5, ZoneNormal},
		{2000, 0.7, ZoneOutro},
		{2150, 0.85, ZoneOutro},
		{2300, 1.0, ZoneOutro},
		{5000, 1.0, ZoneOutro},
		{-40, 0, ZoneIntro},
	}
	for _, tt := range tests {
		got := MapScroll(ScrollState{ScrollY: tt.scrollY, DocumentHeight: 3000, ViewportHeight: 1000})
		if !approx(got.TipViewportPosition, tt.wantTip) {
			t.Errorf("scrollY=%v: tip = %v, want %v", tt.scrollY, got.TipViewportPosition, tt.wantTip)
		}
		if got.Zone != tt.wantZone {
			t.Errorf("scrollY=%v: zone = %v, want %v", tt.scrollY, got.Zone, tt.wantZone)
		}
		if got.TipViewportPosition < 0 || got.TipViewportPosition > 1 || got.Progress < 0 || got.Progress > 1 {
			t.Errorf("scrollY=%v: output out of [0,1]: %+v", tt.scrollY, got)
		}
	}
}

func TestMapScroll_Progress(t *testing.T) {
	s := ScrollState{DocumentHeight: 3000, ViewportHeight: 1000}

	for _, tt := range []struct{ scrollY, want float64 }{
		{0, 0},
		{1150, 0.5},
		{2300, 1},
		{9000, 1},
	} {
		s.ScrollY = tt.scrollY
		if got := MapScroll(s).Progress; !approx(got, tt.want) {
			t.Errorf("scrollY=%v: progress = %v, want %v", tt.scrollY, got, tt.want)
		}
	}
}

func TestMapScroll_Monotonic(t *testing.T) {
	prev := -1.0
	prevTip := -1.0
	for y := -100.0; y <= 2600; y += 7 {
		got := MapScroll(ScrollState{ScrollY: y, DocumentHeight: 3000, ViewportHeight: 1000})
		if got.Progress < prev {
			t.Fatalf("progress decreased at scrollY=%v: %v < %v", y, got.Progress, prev)
		}
		if got.TipViewportPosition < prevTip {
			t.Fatalf("tip decreased at scrollY=%v: %v < %v", y, got.TipViewportPosition, prevTip)
		}
		prev, prevTip = got.Progress, got.TipViewportPosition
	}
	if prev != 1 {
		t.Errorf("progress did not reach 1, ended at %v", prev)
	}
}

func TestMapScroll_NoScrollableRange(t *testing.T) {
	for _, s := range []ScrollState{
		{ScrollY: 200, DocumentHeight: 800, ViewportHeight: 1000},
		{ScrollY: 200, DocumentHeight: 1000, ViewportHeight: 1000},
		{ScrollY: 200, DocumentHeight: 1000, ViewportHeight: 0},
	} {
		got := MapScroll(s)
		if got.Progress != 0 || got.TipViewportPosition != 0 || got.Zone != ZoneNone {
			t.Errorf("MapScroll(%+v) = %+v, want zeros", s, got)
		}
	}
}

func TestExtraScrollHeight(t *testing.T) {
	if got := ExtraScrollHeight(1000); !approx(got, 300) {
		t.Errorf("ExtraScrollHeight(1000) = %v, want 300", got)
	}
}
