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
	"math"

	"github.com/golang/geo/s2"

	"seehuhn.de/go/mapcolor/geometry"
)

// earthRadiusKm is the mean radius of the earth.
const earthRadiusKm = 6371.0088

// geodesicArea returns the area, in km², enclosed by rings of raw
// longitude/latitude points. The winding direction of the rings does not
// matter.
func geodesicArea(rings [][]geometry.Point) float64 {
	var total float64
	for _, ring := range rings {
		pts := make([]s2.Point, len(ring))
		for i, p := range ring {
			pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(p.Y, p.X))
		}
		a := s2.LoopFromPoints(pts).Area()
		if a > 2*math.Pi {
			// clockwise ring: the loop describes the complement
			a = 4*math.Pi - a
		}
		total += a
	}
	return total * earthRadiusKm * earthRadiusKm
}
