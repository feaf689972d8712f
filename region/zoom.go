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
	"github.com/cockroachdb/errors"

	"seehuhn.de/go/mapcolor/geometry"
)

// Viewport describes the screen area a region is shown in.
type Viewport struct {
	Width, Height float64

	// RenderSize is the number of render units per unit of the
	// normalised frame.
	RenderSize float64
}

// Zoom is a camera position.
type Zoom struct {
	// Center is the point to look at, in render units.
	Center geometry.Point

	// Level is the extent, in render units, which must fit into the
	// smaller viewport dimension.
	Level float64
}

// TargetZoomFor returns the camera position which frames the region
// tightly in vp.
//
// The half extents of the region's bounding box are corrected for the
// aspect ratio of the viewport: for a wide viewport the horizontal extent
// is scaled by height/width, otherwise the vertical extent is scaled by
// width/height. The larger of the two then determines the zoom level.
func (ix *Index) TargetZoomFor(key string, vp Viewport) (Zoom, error) {
	r, ok := ix.byKey[key]
	if !ok {
		return Zoom{}, errors.Wrapf(ErrUnknownRegion, "%q", key)
	}
	if vp.Width <= 0 || vp.Height <= 0 || vp.RenderSize <= 0 {
		return Zoom{}, errors.Newf("invalid viewport %gx%g (render size %g)",
			vp.Width, vp.Height, vp.RenderSize)
	}

	b := r.Polygons.Bounds()
	halfW := (b.URx - b.LLx) / 2
	halfH := (b.URy - b.LLy) / 2
	if vp.Width > vp.Height {
		halfW *= vp.Height / vp.Width
	} else {
		halfH *= vp.Width / vp.Height
	}

	return Zoom{
		Center: geometry.Point{
			X: (b.LLx + b.URx) / 2 * vp.RenderSize,
			Y: (b.LLy + b.URy) / 2 * vp.RenderSize,
		},
		Level: 2 * max(halfW, halfH) * vp.RenderSize / min(vp.Width, vp.Height),
	}, nil
}
