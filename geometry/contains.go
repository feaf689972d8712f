// seehuhn.de/go/mapcolor - geometry and colouring state for map colouring
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package geometry

// PointInPolygon reports whether p lies inside the ring, using the even-odd
// rule. A horizontal ray is cast from p towards +X and the edges it crosses
// are counted.
//
// Horizontal edges never satisfy the strict y comparison and are skipped.
// Points exactly on an edge get an unspecified, but repeatable, answer.
func PointInPolygon(p Point, ring []Point) bool {
	mustBeRing(ring)

	inside := false
	j := len(ring) - 1
	for i := range ring {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// x coordinate where the edge crosses the ray's line
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// pointInTriangle reports whether p lies in the closed triangle abc.
// The triangle must be counter-clockwise.
func pointInTriangle(p, a, b, c Point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// cross returns the z component of (b-a) × (c-a). The value is positive if
// c lies to the left of the directed line a→b.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
