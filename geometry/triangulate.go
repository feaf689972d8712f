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

import "slices"

// Triangulate splits a simple ring into triangles by ear clipping.
// The result holds len(ring)-2 triangles, all with counter-clockwise
// orientation, whose indices refer to ring.
//
// The triangles are meant for filled rendering only. For rings which are
// not simple (self-intersecting, or with repeated vertices) the output
// still covers the ring's vertex fan but may overlap.
func Triangulate(ring []Point) []IndexTriangle {
	mustBeRing(ring)

	n := len(ring)
	idx := make([]int, n)
	if SignedArea(ring) >= 0 {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	res := make([]IndexTriangle, 0, n-2)
	i := 0
	for m := len(idx); m > 3; m = len(idx) {
		// Look for an ear, starting where the last one was clipped.
		found := false
		for tries := 0; tries < m; tries++ {
			i %= m
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			if isEar(ring, idx, a, b, c) {
				res = append(res, IndexTriangle{a, b, c})
				idx = slices.Delete(idx, i, i+1)
				found = true
				break
			}
			i++
		}
		if !found {
			// Only degenerate corners are left.  Clip one anyway, so that
			// we always terminate.
			i %= m
			res = append(res, IndexTriangle{idx[(i+m-1)%m], idx[i], idx[(i+1)%m]})
			idx = slices.Delete(idx, i, i+1)
		}
	}
	return append(res, IndexTriangle{idx[0], idx[1], idx[2]})
}

// isEar reports whether the corner a, b, c of the remaining polygon idx can
// be clipped. The polygon must be counter-clockwise.
func isEar(ring []Point, idx []int, a, b, c int) bool {
	pa, pb, pc := ring[a], ring[b], ring[c]
	if cross(pa, pb, pc) <= 0 {
		return false // reflex or collinear corner
	}
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := ring[k]
		if p == pa || p == pb || p == pc {
			continue
		}
		if pointInTriangle(p, pa, pb, pc) {
			return false
		}
	}
	return true
}
