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

// Package geometry implements the polygon routines used by the region
// index: containment tests, triangulation, ring measures, coordinate
// normalisation and thick-line expansion.
//
// A ring is a slice of at least three points, implicitly closed by an edge
// from the last point back to the first. The winding direction of a ring
// is not fixed. Functions taking a ring panic if it has fewer than three
// points.
package geometry

import (
	"iter"
	"math"

	"github.com/cockroachdb/errors"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a 2D coordinate. Raw data uses longitude for X and latitude
// for Y.
type Point = vec.Vec2

// IndexTriangle holds three indices into a ring.
type IndexTriangle [3]int

// Triangle holds the three corners of a triangle.
type Triangle [3]Point

// Edge is a directed line segment between two ring vertices.
type Edge struct {
	A, B Point
}

// Reversed returns the edge with its endpoints swapped.
func (e Edge) Reversed() Edge {
	return Edge{A: e.B, B: e.A}
}

// mustBeRing panics if ring has fewer than three points.
func mustBeRing(ring []Point) {
	if len(ring) < 3 {
		panic(errors.AssertionFailedf("ring has %d points, need at least 3", len(ring)))
	}
}

// SignedArea returns the shoelace area of the ring. The result is
// positive for counter-clockwise rings (with Y pointing up).
func SignedArea(ring []Point) float64 {
	mustBeRing(ring)
	var sum float64
	j := len(ring) - 1
	for i, p := range ring {
		q := ring[j]
		sum += q.X*p.Y - p.X*q.Y
		j = i
	}
	return sum / 2
}

// Area returns the area enclosed by the ring.
func Area(ring []Point) float64 {
	return math.Abs(SignedArea(ring))
}

// Perimeter returns the length of the ring, including the closing edge.
func Perimeter(ring []Point) float64 {
	mustBeRing(ring)
	var total float64
	prev := ring[len(ring)-1]
	for _, p := range ring {
		total += p.Sub(prev).Length()
		prev = p
	}
	return total
}

// Edges calls yield for every edge of the ring, ending with the closing
// edge from the last point to the first.
func Edges(ring []Point) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		n := len(ring)
		for i := range n {
			if !yield(Edge{A: ring[i], B: ring[(i+1)%n]}) {
				return
			}
		}
	}
}

// Bounds returns the tight bounding box of all given points.
// It panics if no points are given.
func Bounds(point ...[]Point) rect.Rect {
	first := true
	var b rect.Rect
	for _, pts := range point {
		for _, p := range pts {
			if first {
				b = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			b.LLx = min(b.LLx, p.X)
			b.LLy = min(b.LLy, p.Y)
			b.URx = max(b.URx, p.X)
			b.URy = max(b.URy, p.Y)
		}
	}
	if first {
		panic(errors.AssertionFailedf("bounding box of an empty point set"))
	}
	return b
}

// Union returns the smallest box containing both a and b.
func Union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

// Overlaps reports whether the closed boxes a and b share at least one
// point. Boxes which only touch along a side overlap.
func Overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// InBounds reports whether p lies in the closed box b.
func InBounds(p Point, b rect.Rect) bool {
	return p.X >= b.LLx && p.X <= b.URx && p.Y >= b.LLy && p.Y <= b.URy
}

// RingPath converts rings into a path of closed polygons.
func RingPath(rings ...[]Point) *path.Data {
	p := &path.Data{}
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		p = p.MoveTo(ring[0])
		for _, pt := range ring[1:] {
			p = p.LineTo(pt)
		}
		p = p.Close()
	}
	return p
}
