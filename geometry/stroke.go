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

import "math"

// strokeSegment is one segment of a polyline, with precomputed direction.
type strokeSegment struct {
	A, B Point // endpoints
	T    Point // unit tangent (A→B direction)
	N    Point // unit normal (90° CCW from T)
}

// ThickPolyline expands an open polyline into a ribbon of constant width,
// returned as a list of triangles.
//
// Every segment contributes two triangles covering the rectangle between
// its offset lines at ±thickness/2. At each interior vertex one joint
// triangle fills the wedge on the outer side of the turn; it connects the
// shared vertex with the offset end of the previous segment and the offset
// start of the next one. The outer side is chosen by the sign of the cross
// product of the two segment directions. Collinear joints get no triangle.
//
// Zero-length segments are ignored. If fewer than two distinct points
// remain, the result is nil.
func ThickPolyline(points []Point, thickness float64) []Triangle {
	segs := polylineSegments(points)
	if len(segs) == 0 {
		return nil
	}

	d := thickness / 2
	res := make([]Triangle, 0, 3*len(segs)-1)
	for i := range segs {
		seg := &segs[i]
		off := seg.N.Mul(d)
		a0, a1 := seg.A.Add(off), seg.A.Sub(off)
		b0, b1 := seg.B.Add(off), seg.B.Sub(off)
		res = append(res,
			Triangle{a0, a1, b0},
			Triangle{a1, b1, b0},
		)

		if i == 0 {
			continue
		}
		prev := &segs[i-1]
		sinTheta := prev.T.X*seg.T.Y - prev.T.Y*seg.T.X
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			// nearly collinear: the two rectangles already meet
		case sinTheta > 0:
			// Left turn: the -N side is outside.
			res = append(res, Triangle{seg.A, prev.B.Sub(prev.N.Mul(d)), a1})
		default:
			// Right turn: the +N side is outside.
			res = append(res, Triangle{seg.A, prev.B.Add(prev.N.Mul(d)), a0})
		}
	}
	return res
}

// polylineSegments converts points into segments, dropping zero-length
// ones.
func polylineSegments(points []Point) []strokeSegment {
	var segs []strokeSegment
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		delta := b.Sub(a)
		length := delta.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := delta.Mul(1 / length)
		segs = append(segs, strokeSegment{
			A: a,
			B: b,
			T: t,
			N: Point{X: -t.Y, Y: t.X},
		})
	}
	// Consecutive segments must share endpoints even if zero-length
	// pieces were dropped in between.
	for i := 1; i < len(segs); i++ {
		segs[i].A = segs[i-1].B
	}
	return segs
}

// Numerical tolerances.
const (
	// zeroLengthThreshold is the minimum length for a segment.
	// Shorter segments are skipped.
	zeroLengthThreshold = 1e-12

	// collinearityThreshold is used to detect nearly collinear segments
	// where no joint triangle is needed.
	collinearityThreshold = 1e-9
)
