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

// Package region indexes the regions of a boundary dataset.
//
// All regions of one Index share a common frame: raw longitude/latitude
// coordinates are mapped into [-1,1]² using the bounding box of the whole
// dataset, so that relative sizes and shared borders are preserved. All
// coordinates accepted and returned by an Index are in this frame unless
// stated otherwise.
//
// An Index is immutable after loading and may be used by several
// goroutines at the same time.
package region

import (
	"github.com/cockroachdb/errors"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/mapcolor/geometry"
)

var (
	// ErrMalformedGeometry is returned for boundary data which cannot be
	// turned into regions.
	ErrMalformedGeometry = errors.New("malformed boundary geometry")

	// ErrMissingName is returned for features without a display name.
	ErrMissingName = errors.New("feature has no name")

	// ErrDuplicateRegion is returned when two features map to the same
	// region key.
	ErrDuplicateRegion = errors.New("duplicate region key")

	// ErrUnknownRegion is returned for region keys not present in an index.
	ErrUnknownRegion = errors.New("unknown region")
)

// Polygon is one part of a region: an outer ring together with a
// triangulation of the ring for filled rendering.
type Polygon struct {
	Ring      []geometry.Point
	Triangles []geometry.IndexTriangle
}

// PolygonSet holds the parts of one region and their bounding box.
// The bounding box is updated by every method which changes the set.
type PolygonSet struct {
	polys  []Polygon
	bounds rect.Rect
}

// Add appends a polygon to the set. The ring must have at least three
// points.
func (s *PolygonSet) Add(p Polygon) {
	b := geometry.Bounds(p.Ring)
	if len(s.polys) == 0 {
		s.bounds = b
	} else {
		s.bounds = geometry.Union(s.bounds, b)
	}
	s.polys = append(s.polys, p)
}

// Set replaces all polygons of the set.
func (s *PolygonSet) Set(polys []Polygon) {
	s.polys = s.polys[:0]
	s.bounds = rect.Rect{}
	for _, p := range polys {
		s.Add(p)
	}
}

// Len returns the number of polygons in the set.
func (s *PolygonSet) Len() int {
	return len(s.polys)
}

// Polygons returns the polygons of the set. The caller must not modify
// the result.
func (s *PolygonSet) Polygons() []Polygon {
	return s.polys
}

// Rings returns the outer rings of all polygons.
func (s *PolygonSet) Rings() [][]geometry.Point {
	rings := make([][]geometry.Point, len(s.polys))
	for i, p := range s.polys {
		rings[i] = p.Ring
	}
	return rings
}

// Bounds returns the tight bounding box of all polygons.
// It panics if the set is empty.
func (s *PolygonSet) Bounds() rect.Rect {
	if len(s.polys) == 0 {
		panic(errors.AssertionFailedf("bounding box of an empty polygon set"))
	}
	return s.bounds
}

// Contains reports whether p lies inside one of the polygons.
func (s *PolygonSet) Contains(p geometry.Point) bool {
	if len(s.polys) == 0 || !geometry.InBounds(p, s.bounds) {
		return false
	}
	for i := range s.polys {
		if geometry.PointInPolygon(p, s.polys[i].Ring) {
			return true
		}
	}
	return false
}

// NumTriangles returns the total number of triangles of all polygons.
func (s *PolygonSet) NumTriangles() int {
	n := 0
	for _, p := range s.polys {
		n += len(p.Triangles)
	}
	return n
}

// Region is a named area made of one or more polygons.
type Region struct {
	// Key identifies the region within its index. It is built from the
	// disambiguation properties and the name, joined by "/".
	Key string

	// Name is the display name.
	Name string

	// Properties are the feature properties from the boundary data.
	Properties map[string]any

	// Priority orders point lookups: regions with higher priority are
	// probed first.
	Priority int

	Polygons PolygonSet

	// AreaKm2 is the geodesic area of the raw region outline.
	AreaKm2 float64
}
