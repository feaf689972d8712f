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
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/pending"
	"seehuhn.de/go/mapcolor/testcases"
)

func load(t *testing.T, d testcases.Dataset) *Index {
	t.Helper()
	ix, err := Load(d.Reader(), config.Default().Boundaries)
	require.NoError(t, err)
	return ix
}

func raw(lon, lat float64) geometry.Point {
	return geometry.Point{X: lon, Y: lat}
}

func gridKey(row, col int) string {
	return "XX/" + testcases.GridName(row, col)
}

func TestLoadGrid(t *testing.T) {
	ix := load(t, testcases.Grid())
	require.Equal(t, 9, ix.Len())
	require.False(t, ix.Wrapped())
	require.Equal(t, rect.Rect{LLx: -100, LLy: 40, URx: -97, URy: 43}, ix.Frame())

	keys := ix.Keys()
	require.Len(t, keys, 9)
	require.Equal(t, gridKey(0, 0), keys[0])

	r, ok := ix.Lookup(gridKey(1, 1))
	require.True(t, ok)
	require.Equal(t, testcases.GridName(1, 1), r.Name)
	require.Equal(t, 1, r.Polygons.Len())
	require.Len(t, r.Polygons.Polygons()[0].Ring, 4, "closing point must be dropped")
	require.Equal(t, 2, r.Polygons.NumTriangles())

	b := r.Polygons.Bounds()
	require.InDelta(t, -1.0/3, b.LLx, 1e-12)
	require.InDelta(t, 1.0/3, b.URx, 1e-12)
}

func TestRegionAt(t *testing.T) {
	ix := load(t, testcases.Grid())
	for row := range 3 {
		for col := range 3 {
			p := ix.Relativize(raw(-99.5+float64(col), 40.5+float64(row)))
			key, ok := ix.RegionAt(p)
			require.True(t, ok)
			require.Equal(t, gridKey(row, col), key)
		}
	}

	_, ok := ix.RegionAt(ix.Relativize(raw(-101, 40.5)))
	require.False(t, ok)
	_, ok = ix.RegionAt(geometry.Point{X: 5, Y: 5})
	require.False(t, ok)
}

func TestPriority(t *testing.T) {
	ix := load(t, testcases.Enclave())
	require.Equal(t, "VA/Fairfax City", ix.Regions()[0].Key)

	key, ok := ix.RegionAt(ix.Relativize(raw(-77.25, 38.75)))
	require.True(t, ok)
	require.Equal(t, "VA/Fairfax City", key)

	key, ok = ix.RegionAt(ix.Relativize(raw(-77.75, 39.5)))
	require.True(t, ok)
	require.Equal(t, "VA/Fairfax", key)

	key, ok = ix.RegionAt(ix.Relativize(raw(-72.5, 44.5)))
	require.True(t, ok)
	require.Equal(t, "VT/Fairfax", key)
}

func TestAdjacency(t *testing.T) {
	ix := load(t, testcases.Grid())

	require.Equal(t,
		[]string{gridKey(0, 1), gridKey(1, 0), gridKey(1, 2), gridKey(2, 1)},
		ix.AdjacentRegions(gridKey(1, 1)))
	require.Equal(t,
		[]string{gridKey(0, 1), gridKey(1, 0)},
		ix.AdjacentRegions(gridKey(0, 0)))

	require.False(t, ix.Adjacent(gridKey(0, 0), gridKey(1, 1)), "corner contact is not adjacency")
	require.False(t, ix.Adjacent(gridKey(0, 0), gridKey(0, 0)))
	require.False(t, ix.Adjacent(gridKey(0, 0), "XX/nowhere"))

	keys := ix.Keys()
	for _, a := range keys {
		for _, b := range keys {
			require.Equal(t, ix.Adjacent(a, b), ix.Adjacent(b, a), "%s / %s", a, b)
		}
	}

	adj := ix.Adjacency()
	require.Len(t, adj, 9)
	total := 0
	for _, list := range adj {
		total += len(list)
	}
	require.Equal(t, 24, total) // 12 shared borders, counted from both sides
}

func TestAdjacencyEnclave(t *testing.T) {
	ix := load(t, testcases.Enclave())
	require.True(t, ix.Adjacent("VA/Fairfax", "VA/Arlington"))
	require.Empty(t, ix.AdjacentRegions("VA/Fairfax City"))
	require.Empty(t, ix.AdjacentRegions("VT/Fairfax"))
	require.Empty(t, ix.AdjacentRegions("no/such region"))
}

func TestSharedEdges(t *testing.T) {
	ix := load(t, testcases.Grid())
	a, b := gridKey(0, 0), gridKey(0, 1)

	edges := ix.SharedEdges(a, b)
	require.Len(t, edges, 1)
	back := ix.SharedEdges(b, a)
	require.Len(t, back, 1)
	require.Equal(t, edges[0], back[0].Reversed())

	require.Empty(t, ix.SharedEdges(a, gridKey(2, 2)))
	require.Empty(t, ix.SharedEdges(a, a))

	lines := ix.BorderLines(a, b)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 2)
	require.Len(t, ix.BorderTriangles(a, b, 0.01), 2)
}

func TestVisible(t *testing.T) {
	ix := load(t, testcases.Grid())
	c := ix.Relativize(raw(-99.5, 40.5))
	view := rect.Rect{LLx: c.X - 0.1, LLy: c.Y - 0.1, URx: c.X + 0.1, URy: c.Y + 0.1}
	require.Equal(t, []string{gridKey(0, 0)}, ix.Visible(view))

	require.Len(t, ix.Visible(rect.Rect{LLx: -1, LLy: -1, URx: 1, URy: 1}), 9)
	require.Empty(t, ix.Visible(rect.Rect{LLx: 2, LLy: 2, URx: 3, URy: 3}))
}

func TestTargetZoomFor(t *testing.T) {
	ix := load(t, testcases.Grid())

	z, err := ix.TargetZoomFor(gridKey(1, 1), Viewport{Width: 200, Height: 100, RenderSize: 1000})
	require.NoError(t, err)
	require.InDelta(t, 0, z.Center.X, 1e-9)
	require.InDelta(t, 0, z.Center.Y, 1e-9)
	require.InDelta(t, 2*(1.0/3)*1000/100, z.Level, 1e-9)

	z, err = ix.TargetZoomFor(gridKey(0, 0), Viewport{Width: 100, Height: 400, RenderSize: 10})
	require.NoError(t, err)
	require.InDelta(t, -20.0/3, z.Center.X, 1e-9)
	require.InDelta(t, -20.0/3, z.Center.Y, 1e-9)
	require.InDelta(t, 2*(1.0/3)*10/100, z.Level, 1e-9)

	_, err = ix.TargetZoomFor("XX/none", Viewport{Width: 1, Height: 1, RenderSize: 1})
	require.ErrorIs(t, err, ErrUnknownRegion)
	_, err = ix.TargetZoomFor(gridKey(0, 0), Viewport{})
	require.Error(t, err)
}

func TestAntimeridian(t *testing.T) {
	ix := load(t, testcases.Antimeridian())
	require.True(t, ix.Wrapped())
	require.Equal(t, 172.0, ix.Frame().LLx)
	require.Equal(t, 211.0, ix.Frame().URx)

	key, ok := ix.RegionAt(ix.Relativize(raw(-149.5, 61.5)))
	require.True(t, ok)
	require.Equal(t, "AK/Anchorage", key)

	key, ok = ix.RegionAt(ix.Relativize(raw(-177, 52)))
	require.True(t, ok)
	require.Equal(t, "AK/Aleutians", key)
	key, ok = ix.RegionAt(ix.Relativize(raw(175, 52)))
	require.True(t, ok)
	require.Equal(t, "AK/Aleutians", key)

	r, _ := ix.Lookup("AK/Aleutians")
	require.Equal(t, 2, r.Polygons.Len())

	// 1°×1° at 61°N: R²·Δλ·(sin 62° − sin 61°) ≈ 5900 km²
	anchorage, _ := ix.Lookup("AK/Anchorage")
	require.InEpsilon(t, 5900, anchorage.AreaKm2, 0.01)
	require.Greater(t, r.AreaKm2, 0.0)
}

func TestMalformed(t *testing.T) {
	want := map[string]error{
		"not_json":       ErrMalformedGeometry,
		"point_geometry": ErrMalformedGeometry,
		"null_geometry":  ErrMalformedGeometry,
		"short_ring":     ErrMalformedGeometry,
		"missing_name":   ErrMissingName,
		"duplicate_key":  ErrDuplicateRegion,
		"empty":          ErrMalformedGeometry,
	}
	require.Len(t, want, len(testcases.Malformed))
	for name, doc := range testcases.Malformed {
		t.Run(name, func(t *testing.T) {
			ix, err := Load(strings.NewReader(doc), config.Default().Boundaries)
			require.Nil(t, ix)
			require.ErrorIs(t, err, want[name])
		})
	}
}

func TestKeyProperties(t *testing.T) {
	opts := config.Default().Boundaries
	opts.KeyProperties = nil
	_, err := Load(testcases.Enclave().Reader(), opts)
	require.ErrorIs(t, err, ErrDuplicateRegion, "Fairfax exists in two states")
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	data, err := testcases.Grid().GeoJSON()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "grid.geojson", data, 0o644))

	ix, err := LoadFile(fs, "grid.geojson", config.Default().Boundaries)
	require.NoError(t, err)
	require.Equal(t, 9, ix.Len())

	_, err = LoadFile(fs, "missing.geojson", config.Default().Boundaries)
	require.Error(t, err)
}

func TestLoadAsync(t *testing.T) {
	task := LoadAsync(func() (io.ReadCloser, error) {
		return io.NopCloser(testcases.Enclave().Reader()), nil
	}, config.Default().Boundaries)

	ix, err := task.Wait()
	require.NoError(t, err)
	require.Equal(t, 4, ix.Len())
	state, _, _ := task.Poll()
	require.Equal(t, pending.Ready, state)

	failed := LoadAsync(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(testcases.Malformed["empty"])), nil
	}, config.Default().Boundaries)
	_, err = failed.Wait()
	require.ErrorIs(t, err, ErrMalformedGeometry)
}

func TestMask(t *testing.T) {
	ix := load(t, testcases.Grid())
	const side = 16

	m, err := ix.GridTransform(gridKey(1, 1), side)
	require.NoError(t, err)
	b, _ := ix.Lookup(gridKey(1, 1))
	box := b.Polygons.Bounds()
	topLeft := ToGrid(m, geometry.Point{X: box.LLx, Y: box.URy})
	require.InDelta(t, 0, topLeft.X, 1e-9)
	require.InDelta(t, 0, topLeft.Y, 1e-9)

	mask, err := ix.Mask(gridKey(1, 1), side)
	require.NoError(t, err)
	require.EqualValues(t, side*side, mask.Count())

	_, err = ix.Mask("XX/none", side)
	require.ErrorIs(t, err, ErrUnknownRegion)
}

func TestMaskShape(t *testing.T) {
	// Aleutians: two parts in a wide bounding square; the mask must
	// agree with point-in-polygon on cell centres away from the border.
	ix := load(t, testcases.Antimeridian())
	const side = 64
	key := "AK/Aleutians"
	mask, err := ix.Mask(key, side)
	require.NoError(t, err)
	require.NotZero(t, mask.Count())
	require.Less(t, mask.Count(), uint(side*side))

	m, err := ix.GridTransform(key, side)
	require.NoError(t, err)
	r, _ := ix.Lookup(key)
	inside := 0
	for _, p := range r.Polygons.Polygons() {
		for _, tri := range p.Triangles {
			c := geometry.Point{
				X: (p.Ring[tri[0]].X + p.Ring[tri[1]].X + p.Ring[tri[2]].X) / 3,
				Y: (p.Ring[tri[0]].Y + p.Ring[tri[1]].Y + p.Ring[tri[2]].Y) / 3,
			}
			g := ToGrid(m, c)
			if mask.Test(uint(int(g.Y)*side + int(g.X))) {
				inside++
			}
		}
	}
	require.Equal(t, r.Polygons.NumTriangles(), inside, "triangle centroids must be in the mask")
}

func TestBorderMask(t *testing.T) {
	ix := load(t, testcases.Enclave())
	const side = 16
	bits, err := ix.BorderMask("VA/Fairfax", "VA/Arlington", side, 2)
	require.NoError(t, err)
	require.EqualValues(t, side, bits.Count())
	for y := range side {
		require.True(t, bits.Test(uint(y*side+side-1)), "row %d", y)
	}

	_, err = ix.BorderMask("VA/Fairfax", "VA/none", side, 2)
	require.ErrorIs(t, err, ErrUnknownRegion)
}

func TestPolygonSet(t *testing.T) {
	var s PolygonSet
	require.Panics(t, func() { s.Bounds() })
	require.False(t, s.Contains(geometry.Point{}))

	sq := func(x0, y0, x1, y1 float64) Polygon {
		return Polygon{Ring: []geometry.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}}
	}
	s.Add(sq(0, 0, 1, 1))
	s.Add(sq(2, 2, 3, 4))
	require.Equal(t, rect.Rect{LLx: 0, LLy: 0, URx: 3, URy: 4}, s.Bounds())
	require.True(t, s.Contains(geometry.Point{X: 2.5, Y: 3}))
	require.False(t, s.Contains(geometry.Point{X: 1.5, Y: 1.5}))

	s.Set([]Polygon{sq(5, 5, 6, 6)})
	require.Equal(t, 1, s.Len())
	require.Equal(t, rect.Rect{LLx: 5, LLy: 5, URx: 6, URy: 6}, s.Bounds())
}
