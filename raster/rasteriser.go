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

// Package raster converts closed polygon paths into per-cell coverage
// values and coverage masks.
//
// The rasteriser uses the signed cover/area model: every edge deposits its
// vertical extent and its horizontal position into the cells it crosses,
// and a left-to-right sweep over each row turns these deposits into the
// fraction of each cell covered by the path. Rows are processed with an
// active edge list, so memory use only depends on the width of the clip
// rectangle.
package raster

import (
	"cmp"
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapcolor/geometry"
)

// EmitFunc receives the coverage of one row of cells, starting at column
// xMin. The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates, stored
// with y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
	dir    float32 // +1 if the segment pointed towards increasing y
}

// xAt returns the x coordinate of the edge at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser fills paths into a grid of unit cells.
// A Rasteriser can be reused for many paths; its buffers grow as needed
// and are kept between calls.
type Rasteriser struct {
	// CTM maps user coordinates to device coordinates, where cell (x, y)
	// occupies [x, x+1)×[y, y+1).
	CTM matrix.Matrix

	// Clip is the part of device space which is rasterised. The
	// coordinates must be integers.
	Clip rect.Rect

	// Flatness is the tolerance, in device units, used when curves are
	// replaced by line segments.
	Flatness float64

	edges  []edge
	active []int
	cover  []float32 // signed vertical extent per cell; reused for output
	area   []float32 // cover weighted by the part of the cell right of the edge

	// bounding box of all edges, device space
	devXMin, devXMax float64
	devYMin, devYMax float64
}

// NewRasteriser returns a rasteriser with the identity transformation and
// the given clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset restores the initial settings with a new clip rectangle. Buffer
// capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
	r.active = r.active[:0]
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.collectPath(p)
	r.sweep(fillNonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.collectPath(p)
	r.sweep(fillEvenOdd, emit)
}

// FillTriangles fills the union of the given triangles. The triangles
// may have any orientation and may overlap.
func (r *Rasteriser) FillTriangles(tris []geometry.Triangle, emit EmitFunc) {
	r.beginEdges()
	for _, t := range tris {
		a, b, c := t[0], t[1], t[2]
		if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) < 0 {
			b, c = c, b
		}
		r.addEdge(a, b)
		r.addEdge(b, c)
		r.addEdge(c, a)
	}
	r.sweep(fillNonZero, emit)
}

// Mask fills p with the nonzero rule into a side×side grid and returns the
// cells whose coverage is at least one half. Cell (x, y) is stored at bit
// y*side+x. The clip rectangle is replaced by the grid.
func (r *Rasteriser) Mask(p *path.Data, side int) *bitset.BitSet {
	bits := bitset.New(uint(side * side))
	r.Clip = rect.Rect{URx: float64(side), URy: float64(side)}
	r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		base := uint(y*side + xMin)
		for i, c := range coverage {
			if c >= maskThreshold {
				bits.Set(base + uint(i))
			}
		}
	})
	return bits
}

// collectPath converts p into device space edges.
func (r *Rasteriser) collectPath(p *path.Data) {
	r.beginEdges()

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.devXMin, r.devYMin = math.Inf(+1), math.Inf(+1)
	r.devXMax, r.devYMax = math.Inf(-1), math.Inf(-1)
}

// addEdge transforms the user space segment p→q and appends it to the
// edge list. Horizontal segments carry no coverage and are dropped.
func (r *Rasteriser) addEdge(p, q vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p.X + m[2]*p.Y + m[4]
	y0 := m[1]*p.X + m[3]*p.Y + m[5]
	x1 := m[0]*q.X + m[2]*q.Y + m[4]
	y1 := m[1]*q.X + m[3]*q.Y + m[5]

	if math.Abs(y1-y0) < horizontalEdgeThreshold {
		return
	}
	dir := float32(1)
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		dxdy: (x1 - x0) / (y1 - y0),
		dir:  dir,
	})

	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0)
	r.devYMax = max(r.devYMax, y1)
}

// linear applies the linear part of the CTM to v.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic replaces the quadratic Bézier curve p0, p1, p2 by line
// segments whose distance from the curve is at most Flatness in device
// space.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic replaces a cubic Bézier curve by line segments. The number
// of segments is given by Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

// sweep walks the rows covered by the edge list from top to bottom and
// emits the coverage of every row which is not entirely empty.
func (r *Rasteriser) sweep(rule fillRule, emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bottom := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].y0 < bottom {
			r.active = append(r.active, next)
			next++
		}

		// drop finished edges
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].y1 <= top
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, xMin, xMax)
		}

		integrate(r.cover, r.area, rule)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate deposits the part of e inside row y into the cover and area
// buffers. The buffers start at column xMin; anything further left is
// added to the first cell as full coverage.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) {
	yTop := max(float64(y), e.y0)
	yBot := min(float64(y+1), e.y1)
	if yBot <= yTop {
		return
	}
	xTop, xBot := e.xAt(yTop), e.xAt(yBot)
	col, last := int(math.Floor(xTop)), int(math.Floor(xBot))

	if col == last {
		r.deposit(col, (xTop+xBot)/2, e.dir*float32(yBot-yTop), xMin, xMax)
		return
	}

	// The edge crosses cell boundaries inside the row. Walk the columns
	// in the order the edge visits them.
	step := 1
	if last < col {
		step = -1
	}
	ya, xa := yTop, xTop
	for ; ; col += step {
		yb, xb := yBot, xBot
		if col != last {
			xb = float64(col)
			if step > 0 {
				xb++
			}
			yb = min(max(e.y0+(xb-e.x0)/e.dxdy, ya), yBot)
		}
		r.deposit(col, (xa+xb)/2, e.dir*float32(yb-ya), xMin, xMax)
		if col == last {
			break
		}
		ya, xa = yb, xb
	}
}

// deposit adds a piece of edge with vertical extent dy, crossing column
// col at mean position x.
func (r *Rasteriser) deposit(col int, x float64, dy float32, xMin, xMax int) {
	switch {
	case col < xMin:
		r.cover[0] += dy
		r.area[0] += dy
	case col < xMax:
		i := col - xMin
		r.cover[i] += dy
		r.area[i] += dy * float32(1-(x-float64(col)))
	}
}

// integrate turns the deposits of one row into coverage values, in place.
func integrate(cover, area []float32, rule fillRule) {
	var acc float32
	for i := range cover {
		w := acc + area[i]
		acc += cover[i]
		if w < 0 {
			w = -w
		}
		switch rule {
		case fillNonZero:
			w = min(w, 1)
		case fillEvenOdd:
			w -= 2 * float32(int(w/2))
			if w > 1 {
				w = 2 - w
			}
		}
		cover[i] = w
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero value, and the offset of that part. An all-zero row gives nil.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default curve tolerance in device units.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which still contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// maskThreshold is the coverage from which a cell belongs to a mask.
	maskThreshold = 0.5
)
