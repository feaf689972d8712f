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

// Package coloring tracks which cells of a region's coloring grid the user
// has filled, and records the progress as a compact history for replay.
//
// A Grid is a square bit map of side S. Alongside it, a downsampled grid
// of side S/D is kept, where a cell is set once at least half of the
// corresponding D×D block is set. Cells of both grids are only ever set,
// never cleared. Snapshots of the downsampled grid form a History, which
// is stored as a gzip-compressed stream of run-length encoded differences.
//
// Cell (x, y) of a grid of side n is stored at bit y*n+x. Grid y
// coordinates point down.
package coloring

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"seehuhn.de/go/mapcolor/geometry"
)

var (
	// ErrSizeMismatch is returned when grid or snapshot sizes do not fit
	// together.
	ErrSizeMismatch = errors.New("grid size mismatch")
)

// Grid is the coloring state of one region.
// A Grid must not be used by more than one goroutine at a time.
type Grid struct {
	side   int
	factor int

	bits  *bitset.BitSet
	count int

	// downsampled grid, and the number of set cells in each block
	small     *bitset.BitSet
	votes     []uint32
	threshold uint32
}

// NewGrid returns an empty grid of the given side length. The factor
// between the grid and its downsampled version must divide side.
func NewGrid(side, factor int) (*Grid, error) {
	if side <= 0 || factor <= 0 || side%factor != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch,
			"side %d is not a positive multiple of %d", side, factor)
	}
	s := side / factor
	return &Grid{
		side:      side,
		factor:    factor,
		bits:      bitset.New(uint(side * side)),
		small:     bitset.New(uint(s * s)),
		votes:     make([]uint32, s*s),
		threshold: uint32(factor*factor+1) / 2,
	}, nil
}

// Side returns the side length of the grid.
func (g *Grid) Side() int {
	return g.side
}

// Factor returns the downsampling factor.
func (g *Grid) Factor() int {
	return g.factor
}

// SmallSide returns the side length of the downsampled grid.
func (g *Grid) SmallSide() int {
	return g.side / g.factor
}

func (g *Grid) index(x, y int) uint {
	if x < 0 || y < 0 || x >= g.side || y >= g.side {
		panic(errors.AssertionFailedf("cell (%d, %d) outside %dx%d grid", x, y, g.side, g.side))
	}
	return uint(y*g.side + x)
}

// Set fills cell (x, y). It returns true if the cell was not filled
// before. Coordinates outside the grid cause a panic.
func (g *Grid) Set(x, y int) bool {
	i := g.index(x, y)
	if g.bits.Test(i) {
		return false
	}
	g.bits.Set(i)
	g.count++
	g.vote(x, y)
	return true
}

// vote counts a newly set cell towards its block of the downsampled grid.
func (g *Grid) vote(x, y int) {
	s := g.side / g.factor
	b := (y/g.factor)*s + x/g.factor
	g.votes[b]++
	if g.votes[b] >= g.threshold {
		g.small.Set(uint(b))
	}
}

// Get reports whether cell (x, y) is filled.
func (g *Grid) Get(x, y int) bool {
	return g.bits.Test(g.index(x, y))
}

// Cardinality returns the number of filled cells.
func (g *Grid) Cardinality() int {
	return g.count
}

// Progress returns the fraction of all cells which are filled.
func (g *Grid) Progress() float64 {
	return float64(g.count) / float64(g.side*g.side)
}

// Completion returns the fraction of the cells in mask which are filled.
// An empty mask counts as complete.
func (g *Grid) Completion(mask *bitset.BitSet) float64 {
	total := mask.Count()
	if total == 0 {
		return 1
	}
	return float64(g.bits.IntersectionCardinality(mask)) / float64(total)
}

// ApplyBrush fills every cell whose coordinates lie at distance less than
// radius from center, and returns the number of newly filled cells.
// The centre may have fractional coordinates and may lie outside the
// grid.
func (g *Grid) ApplyBrush(center geometry.Point, radius float64) int {
	if radius <= 0 {
		return 0
	}
	x0 := max(0, int(math.Floor(center.X-radius)))
	x1 := min(g.side-1, int(math.Ceil(center.X+radius)))
	y0 := max(0, int(math.Floor(center.Y-radius)))
	y1 := min(g.side-1, int(math.Ceil(center.Y+radius)))

	r2 := radius * radius
	n := 0
	for y := y0; y <= y1; y++ {
		dy := float64(y) - center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) - center.X
			if dx*dx+dy*dy < r2 && g.Set(x, y) {
				n++
			}
		}
	}
	return n
}

// Stroke applies the brush along the segment from→to, with dabs spaced
// half a radius apart. Both end points are included. The return value is
// the number of newly filled cells.
//
// Only the part of the segment within radius of the grid is visited, so
// far-away samples cost no more than samples on the grid.
func (g *Grid) Stroke(from, to geometry.Point, radius float64) int {
	if radius <= 0 {
		return 0
	}
	from, to, ok := clipSegment(from, to, -radius, float64(g.side-1)+radius)
	if !ok {
		return 0
	}
	d := to.Sub(from)
	steps := max(1, int(math.Ceil(d.Length()/(radius/2))))
	n := 0
	for i := 0; i <= steps; i++ {
		n += g.ApplyBrush(from.Add(d.Mul(float64(i)/float64(steps))), radius)
	}
	return n
}

// clipSegment restricts the segment a→b to the square [lo,hi]².
// The result is false if no part of the segment lies in the square, or if
// a coordinate is not finite.
func clipSegment(a, b geometry.Point, lo, hi float64) (geometry.Point, geometry.Point, bool) {
	for _, v := range []float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}

	// Liang-Barsky
	t0, t1 := 0.0, 1.0
	d := b.Sub(a)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	if !clip(-d.X, a.X-lo) || !clip(d.X, hi-a.X) ||
		!clip(-d.Y, a.Y-lo) || !clip(d.Y, hi-a.Y) {
		return a, b, false
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

// FromBitSet rebuilds a grid from the output of [Grid.AsBitSet].
// The downsampled grid is recomputed from scratch.
func FromBitSet(side, factor int, raw []byte) (*Grid, error) {
	g, err := NewGrid(side, factor)
	if err != nil {
		return nil, err
	}
	n := side * side
	for k, b := range raw {
		for bit := 0; b != 0; bit++ {
			if b&1 != 0 {
				i := 8*k + bit
				if i >= n {
					return nil, errors.Wrapf(ErrSizeMismatch,
						"bit %d set in a grid of %d cells", i, n)
				}
				g.bits.Set(uint(i))
			}
			b >>= 1
		}
	}
	g.recount()
	return g, nil
}

// recount derives the count and the downsampled grid from the bits.
func (g *Grid) recount() {
	g.count = int(g.bits.Count())
	clear(g.votes)
	g.small.ClearAll()
	for i, ok := g.bits.NextSet(0); ok; i, ok = g.bits.NextSet(i + 1) {
		g.vote(int(i)%g.side, int(i)/g.side)
	}
}

// AsBitSet returns the filled cells as packed bytes: cell i is bit i%8 of
// byte i/8. Trailing zero bytes are omitted.
func (g *Grid) AsBitSet() []byte {
	out := make([]byte, (g.side*g.side+7)/8)
	last := -1
	for i, ok := g.bits.NextSet(0); ok; i, ok = g.bits.NextSet(i + 1) {
		out[i/8] |= 1 << (i % 8)
		last = int(i / 8)
	}
	return out[:last+1]
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.bits = g.bits.Clone()
	c.small = g.small.Clone()
	c.votes = append([]uint32(nil), g.votes...)
	return &c
}

// Downsampled returns a copy of the downsampled grid.
func (g *Grid) Downsampled() *bitset.BitSet {
	return g.small.Clone()
}

// Snapshot captures the downsampled grid, tagged with colour c.
func (g *Grid) Snapshot(c Color) Snapshot {
	return Snapshot{Color: c, Bits: g.small.Clone()}
}
