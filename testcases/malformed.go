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

package testcases

// Malformed contains GeoJSON documents which must be rejected by the
// loader, by name.
var Malformed = map[string]string{
	"not_json": `{"type": "FeatureCollection", "features": [`,

	"point_geometry": `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"STATE": "XX", "NAME": "P"},
		 "geometry": {"type": "Point", "coordinates": [1, 2]}}]}`,

	"null_geometry": `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"STATE": "XX", "NAME": "N"},
		 "geometry": null}]}`,

	"short_ring": `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"STATE": "XX", "NAME": "S"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 1], [0, 0]]]}}]}`,

	"missing_name": `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"STATE": "XX"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}}]}`,

	"duplicate_key": `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"STATE": "XX", "NAME": "D"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}},
		{"type": "Feature", "properties": {"STATE": "XX", "NAME": "D"},
		 "geometry": {"type": "Polygon", "coordinates": [[[2, 0], [3, 0], [3, 1], [2, 0]]]}}]}`,

	"empty": `{"type": "FeatureCollection", "features": []}`,
}
