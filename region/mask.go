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
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/raster"
)

// GridTransform returns the matrix which maps the frame of the index onto
// the side×side coloring grid of a region. The grid covers the bounding
// square of the region: the square around the centre of the bounding box
// whose side is the larger box dimension. Grid y coordinates point down.
func (ix *Index) GridTransform(key string, side int) (matrix.Matrix, error) {
	r, ok := ix.byKey[key]
	if !ok {
		return matrix.Matrix{}, errors.Wrapf(ErrUnknownRegion, "%q", key)
	}
	b := r.Polygons.Bounds()
	extent := max(b.URx-b.LLx, b.URy-b.LLy)
	if extent <= 0 {
		return matrix.Matrix{}, errors.Wrapf(ErrMalformedGeometry, "region %q has no extent", key)
	}

	s := float64(side) / extent
	cx, cy := (b.LLx+b.URx)/2, (b.LLy+b.URy)/2
	h := float64(side) / 2
	return matrix.Matrix{s, 0, 0, -s, h - s*cx, h + s*cy}, nil
}

// ToGrid maps a point in the frame of the index to grid coordinates,
// using a matrix returned by GridTransform.
func ToGrid(m matrix.Matrix, p geometry.Point) geometry.Point {
	return geometry.Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Mask returns the cells of the side×side coloring grid of a region which
// are covered by the region for at least one half. Cell (x, y) is bit
// y*side+x.
func (ix *Index) Mask(key string, side int) (*bitset.BitSet, error) {
	m, err := ix.GridTransform(key, side)
	if err != nil {
		return nil, err
	}
	r := raster.NewRasteriser(rect.Rect{})
	r.CTM = m
	reg := ix.byKey[key]
	return r.Mask(geometry.RingPath(reg.Polygons.Rings()...), side), nil
}

// BorderMask returns the cells of the coloring grid of region a which are
// covered by a ribbon of the given width, in cells, along the border
// shared with region b.
func (ix *Index) BorderMask(a, b string, side int, width float64) (*bitset.BitSet, error) {
	m, err := ix.GridTransform(a, side)
	if err != nil {
		return nil, err
	}
	if _, ok := ix.byKey[b]; !ok {
		return nil, errors.Wrapf(ErrUnknownRegion, "%q", b)
	}

	var tris []geometry.Triangle
	for _, line := range ix.BorderLines(a, b) {
		for i, p := range line {
			line[i] = ToGrid(m, p)
		}
		tris = append(tris, geometry.ThickPolyline(line, width)...)
	}

	bits := bitset.New(uint(side * side))
	r := raster.NewRasteriser(rect.Rect{URx: float64(side), URy: float64(side)})
	r.FillTriangles(tris, func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c >= 0.5 {
				bits.Set(uint(y*side + xMin + i))
			}
		}
	})
	return bits, nil
}
