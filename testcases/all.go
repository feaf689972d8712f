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

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// All contains all valid datasets, by name.
var All = map[string]Dataset{
	"grid":         Grid(),
	"enclave":      Enclave(),
	"antimeridian": Antimeridian(),
}

// Grid returns nine 1°×1° counties of state "XX" in a 3×3 layout.
// County "R<row>C<col>" covers longitudes -100+col to -99+col and
// latitudes 40+row to 41+row. Horizontal and vertical neighbours share a
// border; diagonal neighbours only share a corner.
func Grid() Dataset {
	d := Dataset{Name: "grid"}
	for row := range 3 {
		for col := range 3 {
			x, y := float64(-100+col), float64(40+row)
			d.Features = append(d.Features, Feature{
				Properties: region("XX", GridName(row, col)),
				Geometry:   rectangle(x, y, x+1, y+1),
			})
		}
	}
	return d
}

// GridName returns the name of a county in the Grid dataset.
func GridName(row, col int) string {
	return fmt.Sprintf("R%dC%d", row, col)
}

// Enclave returns a county with an independent city inside it, a
// neighbouring county and a county of the same name in another state.
//
//   - VA/Fairfax: [-78,-76]×[38,40], LSAD "county"
//   - VA/Fairfax City: [-77.5,-77]×[38.5,39], LSAD "city", inside Fairfax
//   - VA/Arlington: [-76,-75]×[38,40], sharing the border x=-76
//   - VT/Fairfax: [-73,-72]×[44,45]
func Enclave() Dataset {
	return Dataset{
		Name: "enclave",
		Features: []Feature{
			{region("VA", "Fairfax", "LSAD", "county"), rectangle(-78, 38, -76, 40)},
			{region("VA", "Fairfax City", "LSAD", "city"), rectangle(-77.5, 38.5, -77, 39)},
			{region("VA", "Arlington", "LSAD", "county"), rectangle(-76, 38, -75, 40)},
			{region("VT", "Fairfax", "LSAD", "county"), rectangle(-73, 44, -72, 45)},
		},
	}
}

// Antimeridian returns two regions of state "AK". "Aleutians" has one
// part on each side of the antimeridian; "Anchorage" is far to the east.
// The raw longitudes span more than 180 degrees.
func Antimeridian() Dataset {
	aleutians := geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{box(172, 51, 179, 54)},
		{box(-179, 51, -176, 53)},
	})
	return Dataset{
		Name: "antimeridian",
		Features: []Feature{
			{region("AK", "Aleutians"), aleutians},
			{region("AK", "Anchorage"), rectangle(-150, 61, -149, 62)},
		},
	}
}
