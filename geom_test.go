package main

import (
	"testing"

	"github.com/paulmach/orb"
)

// unit square with the closing vertex repeated
var squareRing = orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

// same square without the explicit closing vertex
var openSquareRing = orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestPointInRing(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
		p    orb.Point
		want bool
	}{
		{"center", squareRing, orb.Point{0.5, 0.5}, true},
		{"outside east", squareRing, orb.Point{1.5, 0.5}, false},
		{"outside north", squareRing, orb.Point{0.5, 1.5}, false},
		{"outside west", squareRing, orb.Point{-0.5, 0.5}, false},
		{"implicit closure", openSquareRing, orb.Point{0.5, 0.5}, true},
		{"implicit closure outside", openSquareRing, orb.Point{0.5, -0.5}, false},
		{"near corner inside", squareRing, orb.Point{0.01, 0.01}, true},
		{"degenerate two vertices", orb.Ring{{0, 0}, {1, 1}}, orb.Point{0.5, 0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInRing(tt.p, tt.ring); got != tt.want {
				t.Errorf("pointInRing(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClassifyPointParity(t *testing.T) {
	inner := orb.Ring{{0.25, 0.25}, {0.75, 0.25}, {0.75, 0.75}, {0.25, 0.75}, {0.25, 0.25}}

	tests := []struct {
		name     string
		rings    []orb.Ring
		p        orb.Point
		wantLand bool
	}{
		{"no rings is land", nil, orb.Point{0.5, 0.5}, true},
		{"inside one ring is water", []orb.Ring{squareRing}, orb.Point{0.5, 0.5}, false},
		{"outside one ring is land", []orb.Ring{squareRing}, orb.Point{2, 2}, true},
		{"island in lake is land", []orb.Ring{squareRing, inner}, orb.Point{0.5, 0.5}, true},
		{"lake around island is water", []orb.Ring{squareRing, inner}, orb.Point{0.1, 0.1}, false},
		{"outside nested rings is land", []orb.Ring{squareRing, inner}, orb.Point{2, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPoint(tt.p, tt.rings); got != tt.wantLand {
				t.Errorf("classifyPoint(%v) = %v, want %v", tt.p, got, tt.wantLand)
			}
		})
	}
}
