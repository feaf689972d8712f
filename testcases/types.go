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

// Package testcases holds synthetic boundary datasets for tests.
//
// The datasets are small enough to reason about by hand: every region is
// built from axis-aligned rectangles with integer corner coordinates, so
// shared borders match exactly and containment of a point can be read off
// the coordinates.
package testcases

import (
	"bytes"
	"io"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Dataset is a boundary file with one feature per region.
type Dataset struct {
	Name     string // lowercase a-z and _ only
	Features []Feature
}

// Feature is a single region.
type Feature struct {
	Properties map[string]any
	Geometry   geom.T // *geom.Polygon or *geom.MultiPolygon
}

// GeoJSON encodes the dataset as a GeoJSON FeatureCollection.
func (d Dataset) GeoJSON() ([]byte, error) {
	fc := &geojson.FeatureCollection{}
	for _, f := range d.Features {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: f.Properties,
		})
	}
	return fc.MarshalJSON()
}

// Reader returns the GeoJSON encoding of the dataset.
// It panics if the dataset cannot be encoded.
func (d Dataset) Reader() io.Reader {
	data, err := d.GeoJSON()
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(data)
}

// box returns the outline of the rectangle [x0,x1]×[y0,y1], counter-
// clockwise and with the first point repeated at the end, as GeoJSON
// requires.
func box(x0, y0, x1, y1 float64) []geom.Coord {
	return []geom.Coord{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

// rectangle builds a single-part polygon.
func rectangle(x0, y0, x1, y1 float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{box(x0, y0, x1, y1)})
}

// region builds the properties of a feature.
func region(state, name string, extra ...string) map[string]any {
	props := map[string]any{"STATE": state, "NAME": name}
	for i := 0; i+1 < len(extra); i += 2 {
		props[extra[i]] = extra[i+1]
	}
	return props
}
