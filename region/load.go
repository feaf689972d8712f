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
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"seehuhn.de/go/mapcolor"
	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/pending"
)

// Load reads a GeoJSON FeatureCollection and builds an index with one
// region per feature.
//
// Every feature must have a Polygon or MultiPolygon geometry. Only the
// outer ring of each polygon is used; holes are ignored. The region key
// is made from the values of opts.KeyProperties followed by the name, all
// joined by "/".
func Load(r io.Reader, opts config.Boundaries) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading boundary data")
	}

	fc := &geojson.FeatureCollection{}
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding boundary data"), ErrMalformedGeometry)
	}
	if len(fc.Features) == 0 {
		return nil, errors.Wrap(ErrMalformedGeometry, "no features")
	}

	ix := &Index{
		byKey: make(map[string]*Region, len(fc.Features)),
	}
	var parts [][][]geometry.Point // parts[i] are the raw rings of region i
	for i, f := range fc.Features {
		reg, rings, err := newRegion(i, f, opts)
		if err != nil {
			return nil, err
		}
		if _, dup := ix.byKey[reg.Key]; dup {
			return nil, errors.Wrapf(ErrDuplicateRegion, "feature %d: %q", i, reg.Key)
		}
		reg.AreaKm2 = geodesicArea(rings)
		ix.byKey[reg.Key] = reg
		ix.regions = append(ix.regions, reg)
		parts = append(parts, rings)
	}

	var all [][]geometry.Point
	for _, rings := range parts {
		all = append(all, rings...)
	}
	ix.wrapped = geometry.WrapLongitudes(all)
	ix.frame = geometry.Bounds(all...)

	triangles := 0
	for i, reg := range ix.regions {
		for _, ring := range parts[i] {
			for k, p := range ring {
				ring[k] = geometry.Relativize(p, ix.frame)
			}
			poly := Polygon{Ring: ring, Triangles: geometry.Triangulate(ring)}
			triangles += len(poly.Triangles)
			reg.Polygons.Add(poly)
		}
	}

	slices.SortStableFunc(ix.regions, func(a, b *Region) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	mapcolor.Logger().Debug("boundaries loaded",
		"regions", len(ix.regions),
		"rings", len(all),
		"triangles", triangles,
		"wrapped", ix.wrapped)
	return ix, nil
}

// LoadFile reads a boundary file from fs.
func LoadFile(fs afero.Fs, name string, opts config.Boundaries) (*Index, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ix, err := Load(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return ix, nil
}

// LoadAsync loads an index in the background. The caller polls the
// returned task until it is ready.
func LoadAsync(open func() (io.ReadCloser, error), opts config.Boundaries) *pending.Task[*Index] {
	return pending.Start(func() (*Index, error) {
		r, err := open()
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return Load(r, opts)
	})
}

// newRegion converts feature number i into a region and returns the raw
// outer rings of its parts.
func newRegion(i int, f *geojson.Feature, opts config.Boundaries) (*Region, [][]geometry.Point, error) {
	name, ok := f.Properties[opts.NameProperty].(string)
	if !ok || name == "" {
		return nil, nil, errors.Wrapf(ErrMissingName, "feature %d: property %q", i, opts.NameProperty)
	}

	var keyParts []string
	for _, prop := range opts.KeyProperties {
		if v, ok := f.Properties[prop]; ok && v != nil {
			keyParts = append(keyParts, fmt.Sprint(v))
		}
	}
	keyParts = append(keyParts, name)

	var polys []*geom.Polygon
	switch g := f.Geometry.(type) {
	case *geom.Polygon:
		polys = append(polys, g)
	case *geom.MultiPolygon:
		for k := range g.NumPolygons() {
			polys = append(polys, g.Polygon(k))
		}
	case nil:
		return nil, nil, errors.Wrapf(ErrMalformedGeometry, "feature %d (%s): no geometry", i, name)
	default:
		return nil, nil, errors.Wrapf(ErrMalformedGeometry,
			"feature %d (%s): unsupported geometry type %T", i, name, g)
	}
	if len(polys) == 0 {
		return nil, nil, errors.Wrapf(ErrMalformedGeometry, "feature %d (%s): no polygons", i, name)
	}

	rings := make([][]geometry.Point, 0, len(polys))
	for k, poly := range polys {
		if poly.NumLinearRings() == 0 {
			return nil, nil, errors.Wrapf(ErrMalformedGeometry,
				"feature %d (%s), part %d: no rings", i, name, k)
		}
		ring := outerRing(poly.LinearRing(0).Coords())
		if len(ring) < 3 {
			return nil, nil, errors.Wrapf(ErrMalformedGeometry,
				"feature %d (%s), part %d: ring has %d points", i, name, k, len(ring))
		}
		rings = append(rings, ring)
	}

	reg := &Region{
		Key:        strings.Join(keyParts, "/"),
		Name:       name,
		Properties: f.Properties,
		Priority:   opts.PriorityOf(f.Properties),
	}
	return reg, rings, nil
}

// outerRing converts GeoJSON coordinates into a ring, dropping the
// repeated closing point.
func outerRing(coords []geom.Coord) []geometry.Point {
	ring := make([]geometry.Point, 0, len(coords))
	for _, c := range coords {
		ring = append(ring, geometry.Point{X: c.X(), Y: c.Y()})
	}
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	return ring
}
