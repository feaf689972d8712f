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

package geometry

import "seehuhn.de/go/geom/rect"

// Relativize maps p into the square frame [-1,1]×[-1,1] defined by box.
//
// The larger of the two box dimensions maps exactly onto [-1,1]. The
// smaller one is widened symmetrically around its midpoint to the same
// range, so that the aspect ratio is preserved and the data is centred.
// A box of zero size maps every point to the origin.
func Relativize(p Point, box rect.Rect) Point {
	minX, maxX := box.LLx, box.URx
	minY, maxY := box.LLy, box.URy
	xRange := maxX - minX
	yRange := maxY - minY
	maxRange := max(xRange, yRange)
	if maxRange <= 0 {
		return Point{}
	}

	if xRange < yRange {
		mid := (minX + maxX) / 2
		minX = mid - maxRange/2
		maxX = mid + maxRange/2
	} else {
		mid := (minY + maxY) / 2
		minY = mid - maxRange/2
		maxY = mid + maxRange/2
	}

	return Point{
		X: (p.X-minX)/(maxX-minX)*2 - 1,
		Y: (p.Y-minY)/(maxY-minY)*2 - 1,
	}
}

// wrapThreshold is the X extent above which data is taken to straddle the
// antimeridian.
const wrapThreshold = 180

// WrapLongitudes shifts negative longitudes by +360 if the combined X
// extent of all rings exceeds 180 degrees. The rings are modified in place.
// The return value tells whether the shift was applied.
//
// This is a heuristic for regions like Alaska which cross the
// antimeridian. It is not a general dateline solver: data which
// legitimately spans more than half the globe is shifted as well.
func WrapLongitudes(rings [][]Point) bool {
	box := Bounds(rings...)
	if box.URx-box.LLx <= wrapThreshold {
		return false
	}
	for _, ring := range rings {
		for i := range ring {
			if ring[i].X < 0 {
				ring[i].X += 360
			}
		}
	}
	return true
}
