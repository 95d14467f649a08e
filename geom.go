package main

import "github.com/paulmach/orb"

// pointInRing reports whether p falls inside ring using the even-odd
// ray casting rule. The ring is treated as closed: the last vertex
// connects back to the first.
func pointInRing(p orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x, y := p[0], p[1]
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// classifyPoint resolves a point against a tile's full boundary set.
// The boundaries outline water bodies, so a point enclosed by an odd
// number of rings is water and an even number (islands in lakes, or no
// data at all) is land. Returns true for land.
func classifyPoint(p orb.Point, rings []orb.Ring) bool {
	insideCount := 0
	for _, ring := range rings {
		if pointInRing(p, ring) {
			insideCount++
		}
	}
	return insideCount%2 == 0
}
