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

import (
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/rect"
)

var unitSquare = []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// lShape is a non-convex hexagon, clockwise.
var lShape = []Point{
	{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 2},
	{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0},
}

func reversed(ring []Point) []Point {
	res := make([]Point, len(ring))
	for i, p := range ring {
		res[len(ring)-1-i] = p
	}
	return res
}

func TestPointInPolygon(t *testing.T) {
	cases := []struct {
		name string
		ring []Point
		p    Point
		want bool
	}{
		{"square_inside", unitSquare, Point{X: 0.5, Y: 0.5}, true},
		{"square_outside_diag", unitSquare, Point{X: 1.5, Y: 1.5}, false},
		{"square_outside_left", unitSquare, Point{X: -0.5, Y: 0.5}, false},
		{"square_reversed_inside", reversed(unitSquare), Point{X: 0.5, Y: 0.5}, true},
		{"l_inside_arm", lShape, Point{X: 0.5, Y: 1.5}, true},
		{"l_notch", lShape, Point{X: 1.5, Y: 1.5}, false},
		{"l_inside_foot", lShape, Point{X: 1.5, Y: 0.5}, true},
		{"l_vertex_height", lShape, Point{X: 0.5, Y: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointInPolygon(tc.p, tc.ring); got != tc.want {
				t.Errorf("PointInPolygon(%v) = %t, want %t", tc.p, got, tc.want)
			}
		})
	}
}

func TestPointInPolygonEdgeIsConsistent(t *testing.T) {
	p := Point{X: 1, Y: 0.5} // on the right edge
	first := PointInPolygon(p, unitSquare)
	for range 10 {
		if PointInPolygon(p, unitSquare) != first {
			t.Fatal("answer for a point on an edge changed between calls")
		}
	}
}

func TestShortRingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a two-point ring")
		}
	}()
	PointInPolygon(Point{}, []Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
}

func TestAreaPerimeter(t *testing.T) {
	if a := Area(unitSquare); a != 1 {
		t.Errorf("Area(square) = %g", a)
	}
	if a := Area(reversed(unitSquare)); a != 1 {
		t.Errorf("Area(reversed square) = %g", a)
	}
	if a := SignedArea(reversed(unitSquare)); a != -1 {
		t.Errorf("SignedArea(clockwise square) = %g", a)
	}
	if a := Area(lShape); a != 3 {
		t.Errorf("Area(L) = %g", a)
	}
	if p := Perimeter(unitSquare); p != 4 {
		t.Errorf("Perimeter(square) = %g", p)
	}
	if p := Perimeter(lShape); p != 8 {
		t.Errorf("Perimeter(L) = %g", p)
	}
}

func triangleArea(ring []Point, tri IndexTriangle) float64 {
	return SignedArea([]Point{ring[tri[0]], ring[tri[1]], ring[tri[2]]})
}

func TestTriangulate(t *testing.T) {
	star := make([]Point, 10)
	for i := range star {
		r := 1.0
		if i%2 == 1 {
			r = 0.4
		}
		angle := float64(i) * math.Pi / 5
		star[i] = Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}

	rings := map[string][]Point{
		"square":          unitSquare,
		"square_reversed": reversed(unitSquare),
		"l_shape":         lShape,
		"l_reversed":      reversed(lShape),
		"star":            star,
	}
	for name, ring := range rings {
		t.Run(name, func(t *testing.T) {
			tris := Triangulate(ring)
			if len(tris) != len(ring)-2 {
				t.Fatalf("got %d triangles, want %d", len(tris), len(ring)-2)
			}
			var total float64
			for _, tri := range tris {
				a := triangleArea(ring, tri)
				if a < -1e-12 {
					t.Errorf("triangle %v is clockwise", tri)
				}
				total += a
			}
			if math.Abs(total-Area(ring)) > 1e-9 {
				t.Errorf("triangle area %g, ring area %g", total, Area(ring))
			}
		})
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	// all points on a line: must terminate with n-2 triangles
	ring := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if tris := Triangulate(ring); len(tris) != 2 {
		t.Errorf("got %d triangles, want 2", len(tris))
	}
}

func TestRelativize(t *testing.T) {
	box := rect.Rect{LLx: -100, LLy: 30, URx: -80, URy: 40}
	corners := []Point{
		{X: box.LLx, Y: box.LLy}, {X: box.URx, Y: box.URy},
		{X: box.LLx, Y: box.URy}, {X: box.URx, Y: box.LLy},
	}
	for _, c := range corners {
		q := Relativize(c, box)
		// X is the larger dimension and maps exactly onto ±1
		if math.Abs(math.Abs(q.X)-1) > 1e-12 {
			t.Errorf("Relativize(%v).X = %g, want ±1", c, q.X)
		}
		// Y is padded by the same amount on both sides
		if math.Abs(math.Abs(q.Y)-0.5) > 1e-12 {
			t.Errorf("Relativize(%v).Y = %g, want ±0.5", c, q.Y)
		}
	}

	mid := Relativize(Point{X: -90, Y: 35}, box)
	if math.Abs(mid.X) > 1e-12 || math.Abs(mid.Y) > 1e-12 {
		t.Errorf("centre maps to %v", mid)
	}

	tall := rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 4}
	if q := Relativize(Point{X: 0, Y: 4}, tall); q.Y != 1 || math.Abs(q.X+0.25) > 1e-12 {
		t.Errorf("tall box corner maps to %v", q)
	}
}

func TestRelativizeBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pts := make([]Point, 200)
	for i := range pts {
		pts[i] = Point{X: rng.Float64()*50 - 120, Y: rng.Float64()*20 + 25}
	}
	box := Bounds(pts)
	for _, p := range pts {
		q := Relativize(p, box)
		if q.X < -1-1e-12 || q.X > 1+1e-12 || q.Y < -1-1e-12 || q.Y > 1+1e-12 {
			t.Fatalf("%v maps outside the unit square: %v", p, q)
		}
	}
}

func TestWrapLongitudes(t *testing.T) {
	rings := [][]Point{
		{{X: 172, Y: 52}, {X: 179, Y: 52}, {X: 179, Y: 55}},
		{{X: -179, Y: 60}, {X: -141, Y: 60}, {X: -141, Y: 70}},
	}
	if !WrapLongitudes(rings) {
		t.Fatal("expected the wrap to apply")
	}
	if rings[1][0].X != 181 || rings[1][1].X != 219 {
		t.Errorf("unexpected wrapped coordinates %v", rings[1])
	}
	if rings[0][0].X != 172 {
		t.Errorf("positive longitude changed: %v", rings[0][0])
	}

	small := [][]Point{{{X: -90, Y: 0}, {X: -80, Y: 0}, {X: -85, Y: 5}}}
	if WrapLongitudes(small) {
		t.Error("narrow data must not be wrapped")
	}
}

func TestThickPolyline(t *testing.T) {
	t.Run("straight", func(t *testing.T) {
		tris := ThickPolyline([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 2)
		if len(tris) != 2 {
			t.Fatalf("got %d triangles, want 2", len(tris))
		}
		var area float64
		for _, tri := range tris {
			area += Area(tri[:])
		}
		if math.Abs(area-20) > 1e-9 {
			t.Errorf("ribbon area %g, want 20", area)
		}
	})

	t.Run("left_turn", func(t *testing.T) {
		pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
		tris := ThickPolyline(pts, 2)
		if len(tris) != 5 {
			t.Fatalf("got %d triangles, want 5", len(tris))
		}
		joint := tris[4]
		if joint[0] != pts[1] {
			t.Errorf("joint does not start at the shared vertex: %v", joint)
		}
		// the outer side of a left turn is below/right of the corner
		if joint[1] != (Point{X: 10, Y: -1}) || joint[2] != (Point{X: 11, Y: 0}) {
			t.Errorf("unexpected joint triangle %v", joint)
		}
	})

	t.Run("right_turn", func(t *testing.T) {
		pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: -10}}
		tris := ThickPolyline(pts, 2)
		joint := tris[4]
		if joint[1] != (Point{X: 10, Y: 1}) || joint[2] != (Point{X: 11, Y: 0}) {
			t.Errorf("unexpected joint triangle %v", joint)
		}
	})

	t.Run("collinear", func(t *testing.T) {
		pts := []Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
		if n := len(ThickPolyline(pts, 1)); n != 4 {
			t.Errorf("got %d triangles, want 4", n)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		if tris := ThickPolyline([]Point{{X: 1, Y: 1}, {X: 1, Y: 1}}, 1); tris != nil {
			t.Errorf("expected nil, got %v", tris)
		}
	})
}

func TestBoxes(t *testing.T) {
	a := rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}
	b := rect.Rect{LLx: 1, LLy: 0, URx: 2, URy: 1}
	c := rect.Rect{LLx: 1.5, LLy: 2, URx: 3, URy: 3}
	if !Overlaps(a, b) || !Overlaps(b, a) {
		t.Error("touching boxes must overlap")
	}
	if Overlaps(a, c) {
		t.Error("disjoint boxes overlap")
	}
	if u := Union(a, c); u != (rect.Rect{LLx: 0, LLy: 0, URx: 3, URy: 3}) {
		t.Errorf("Union = %v", u)
	}
	if got := Bounds(lShape); got != (rect.Rect{LLx: 0, LLy: 0, URx: 2, URy: 2}) {
		t.Errorf("Bounds = %v", got)
	}
}

func TestEdges(t *testing.T) {
	var edges []Edge
	for e := range Edges(unitSquare) {
		edges = append(edges, e)
	}
	if len(edges) != 4 {
		t.Fatalf("got %d edges", len(edges))
	}
	if edges[3] != (Edge{A: Point{X: 0, Y: 1}, B: Point{X: 0, Y: 0}}) {
		t.Errorf("closing edge is %v", edges[3])
	}
}
