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

package region

import (
	"slices"

	"seehuhn.de/go/mapcolor"
	"seehuhn.de/go/mapcolor/geometry"
)

// edgeKey is an undirected edge, with the endpoints in a fixed order.
type edgeKey struct {
	a, b geometry.Point
}

func undirected(e geometry.Edge) edgeKey {
	a, b := e.A, e.B
	if b.X < a.X || b.X == a.X && b.Y < a.Y {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeSet returns the undirected edges of all rings of r.
func edgeSet(r *Region) map[edgeKey]struct{} {
	set := make(map[edgeKey]struct{})
	for _, p := range r.Polygons.Polygons() {
		for e := range geometry.Edges(p.Ring) {
			set[undirected(e)] = struct{}{}
		}
	}
	return set
}

// touching reports whether r and s share at least one edge.
// Edges match only if both endpoints are exactly equal; the direction
// does not matter.
func touching(r, s *Region) bool {
	if r == s || !geometry.Overlaps(r.Polygons.Bounds(), s.Polygons.Bounds()) {
		return false
	}
	// build the set from the region with fewer points
	if ringPoints(s) < ringPoints(r) {
		r, s = s, r
	}
	set := edgeSet(r)
	for _, p := range s.Polygons.Polygons() {
		for e := range geometry.Edges(p.Ring) {
			if _, ok := set[undirected(e)]; ok {
				return true
			}
		}
	}
	return false
}

func ringPoints(r *Region) int {
	n := 0
	for _, p := range r.Polygons.Polygons() {
		n += len(p.Ring)
	}
	return n
}

// Adjacent reports whether the regions a and b share a border edge.
// Unknown keys are not adjacent to anything, and no region is adjacent
// to itself.
func (ix *Index) Adjacent(a, b string) bool {
	ra, okA := ix.byKey[a]
	rb, okB := ix.byKey[b]
	if !okA || !okB {
		return false
	}
	return touching(ra, rb)
}

// AdjacentRegions returns the sorted keys of all regions adjacent to key.
func (ix *Index) AdjacentRegions(key string) []string {
	return slices.Clone(ix.Adjacency()[key])
}

// Adjacency returns the adjacency lists of all regions. Every region of
// the index has an entry, and the lists are sorted. The result is
// computed on first use and shared between callers; it must not be
// modified.
func (ix *Index) Adjacency() map[string][]string {
	ix.adjOnce.Do(func() {
		adj := make(map[string][]string, len(ix.regions))
		pairs := 0
		for _, r := range ix.regions {
			adj[r.Key] = nil
		}
		for i, r := range ix.regions {
			for _, s := range ix.regions[i+1:] {
				if touching(r, s) {
					adj[r.Key] = append(adj[r.Key], s.Key)
					adj[s.Key] = append(adj[s.Key], r.Key)
					pairs++
				}
			}
		}
		for _, list := range adj {
			slices.Sort(list)
		}
		ix.adj = adj
		mapcolor.Logger().Debug("adjacency computed", "regions", len(adj), "pairs", pairs)
	})
	return ix.adj
}

// SharedEdges returns the edges of region a, in ring order, which also
// occur in region b in either direction.
func (ix *Index) SharedEdges(a, b string) []geometry.Edge {
	ra, okA := ix.byKey[a]
	rb, okB := ix.byKey[b]
	if !okA || !okB || ra == rb {
		return nil
	}
	if !geometry.Overlaps(ra.Polygons.Bounds(), rb.Polygons.Bounds()) {
		return nil
	}

	set := edgeSet(rb)
	var res []geometry.Edge
	for _, p := range ra.Polygons.Polygons() {
		for e := range geometry.Edges(p.Ring) {
			if _, ok := set[undirected(e)]; ok {
				res = append(res, e)
			}
		}
	}
	return res
}

// BorderLines joins the shared edges of a and b into polylines. Edges
// which follow each other along the ring of a are merged.
func (ix *Index) BorderLines(a, b string) [][]geometry.Point {
	var lines [][]geometry.Point
	for _, e := range ix.SharedEdges(a, b) {
		if n := len(lines); n > 0 {
			last := lines[n-1]
			if last[len(last)-1] == e.A {
				lines[n-1] = append(last, e.B)
				continue
			}
		}
		lines = append(lines, []geometry.Point{e.A, e.B})
	}
	return lines
}

// BorderTriangles returns a ribbon of the given width, in frame units,
// along the shared border of a and b.
func (ix *Index) BorderTriangles(a, b string, width float64) []geometry.Triangle {
	var tris []geometry.Triangle
	for _, line := range ix.BorderLines(a, b) {
		tris = append(tris, geometry.ThickPolyline(line, width)...)
	}
	return tris
}
